package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/hueblend/internal/display"
)

// DisplayDependencies defines the interface for the shared display state.
type DisplayDependencies interface {
	Snapshot(ctx context.Context) (display.Snapshot, error)
	UpdateDisplay(ctx context.Context, hue0, hue1 *string) (display.Snapshot, error)
	BlendDisplay(ctx context.Context) (display.Snapshot, error)
}

// displayRequest mirrors the OpenAPI schema for PUT /display. Omitted
// inputs keep their current text.
type displayRequest struct {
	Hue0 *hueValue `json:"hue0"`
	Hue1 *hueValue `json:"hue1"`
}

func (r displayRequest) inputs() (*string, *string) {
	conv := func(v *hueValue) *string {
		if v == nil {
			return nil
		}
		s := string(*v)
		return &s
	}
	return conv(r.Hue0), conv(r.Hue1)
}

// DisplayHandler handles display requests.
type DisplayHandler struct {
	deps DisplayDependencies
}

// NewDisplayHandler creates a new display handler.
func NewDisplayHandler(deps DisplayDependencies) *DisplayHandler {
	return &DisplayHandler{deps: deps}
}

// HandleDisplay handles GET /display and PUT /display requests.
func (h *DisplayHandler) HandleDisplay(w http.ResponseWriter, r *http.Request) {
	const op = "api.display"

	switch r.Method {
	case http.MethodGet:
		snap, err := h.deps.Snapshot(r.Context())
		if err != nil {
			writeKindError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case http.MethodPut:
		var req displayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeKindError(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		hue0, hue1 := req.inputs()
		snap, err := h.deps.UpdateDisplay(r.Context(), hue0, hue1)
		if err != nil {
			writeKindError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, snap)
	default:
		methodNotAllowed(w, op, http.MethodGet, http.MethodPut)
	}
}

// HandleBlend handles POST /display/blend requests.
func (h *DisplayHandler) HandleBlend(w http.ResponseWriter, r *http.Request) {
	const op = "api.display_blend"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	snap, err := h.deps.BlendDisplay(r.Context())
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
