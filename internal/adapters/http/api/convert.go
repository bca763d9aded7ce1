package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/hueblend/internal/domain/hue"
)

// ConvertDependencies defines the interface for hue/point conversions.
type ConvertDependencies interface {
	ToPoint(ctx context.Context, raw string) (hue.Angle, hue.Point, error)
	ToAngle(ctx context.Context, x, y *float64) (hue.Angle, error)
}

type toPointRequest struct {
	Hue hueValue `json:"hue"`
}

// toAngleRequest keeps coordinates optional so a missing one is reported
// instead of read as zero.
type toAngleRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// ConvertHandler handles conversion requests.
type ConvertHandler struct {
	deps ConvertDependencies
}

// NewConvertHandler creates a new convert handler.
func NewConvertHandler(deps ConvertDependencies) *ConvertHandler {
	return &ConvertHandler{deps: deps}
}

// HandleToPoint handles POST /convert/point requests.
func (h *ConvertHandler) HandleToPoint(w http.ResponseWriter, r *http.Request) {
	const op = "api.convert_point"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req toPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	a, p, err := h.deps.ToPoint(r.Context(), string(req.Hue))
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pointResponse{Hue: a.Degrees(), Point: p})
}

// HandleToAngle handles POST /convert/angle requests.
func (h *ConvertHandler) HandleToAngle(w http.ResponseWriter, r *http.Request) {
	const op = "api.convert_angle"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req toAngleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	a, err := h.deps.ToAngle(r.Context(), req.X, req.Y)
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pointResponse{Hue: a.Degrees(), Point: hue.Point{X: *req.X, Y: *req.Y}})
}
