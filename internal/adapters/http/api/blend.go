package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/hueblend/internal/domain/blend"
)

// BlendDependencies defines the interface for stateless blends.
type BlendDependencies interface {
	Blend(ctx context.Context, raw0, raw1 string) (blend.Result, error)
}

// blendRequest mirrors the OpenAPI schema for POST /blend.
type blendRequest struct {
	Hue0 hueValue `json:"hue0"`
	Hue1 hueValue `json:"hue1"`
}

// BlendHandler handles blend requests.
type BlendHandler struct {
	deps BlendDependencies
}

// NewBlendHandler creates a new blend handler.
func NewBlendHandler(deps BlendDependencies) *BlendHandler {
	return &BlendHandler{deps: deps}
}

// HandleBlend handles GET /blend?hue0=&hue1= and POST /blend requests.
func (h *BlendHandler) HandleBlend(w http.ResponseWriter, r *http.Request) {
	const op = "api.blend"

	var req blendRequest
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Hue0, req.Hue1 = hueValue(q.Get("hue0")), hueValue(q.Get("hue1"))
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeKindError(w, WrapKind(op, ErrBadRequest, err))
			return
		}
	default:
		methodNotAllowed(w, op, http.MethodGet, http.MethodPost)
		return
	}

	res, err := h.deps.Blend(r.Context(), string(req.Hue0), string(req.Hue1))
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newBlendResponse(res))
}
