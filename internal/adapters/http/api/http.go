// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/hueblend/internal/display"
	"github.com/okian/hueblend/internal/domain/blend"
	"github.com/okian/hueblend/internal/domain/hue"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	BlendDependencies
	ConvertDependencies
	DisplayDependencies
	StreamDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	blendHandler     *BlendHandler
	convertHandler   *ConvertHandler
	displayHandler   *DisplayHandler
	streamHandler    *StreamHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		blendHandler:     NewBlendHandler(deps),
		convertHandler:   NewConvertHandler(deps),
		displayHandler:   NewDisplayHandler(deps),
		streamHandler:    NewStreamHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/blend", MetricsMiddleware(s.blendHandler.HandleBlend, "blend"))
	mux.HandleFunc("/convert/point", MetricsMiddleware(s.convertHandler.HandleToPoint, "convert_point"))
	mux.HandleFunc("/convert/angle", MetricsMiddleware(s.convertHandler.HandleToAngle, "convert_angle"))
	mux.HandleFunc("/display", MetricsMiddleware(s.displayHandler.HandleDisplay, "display"))
	mux.HandleFunc("/display/blend", MetricsMiddleware(s.displayHandler.HandleBlend, "display_blend"))
	mux.HandleFunc("/display/stream", MetricsMiddleware(s.streamHandler.HandleStream, "display_stream"))
}

// hueValue is a hue as typed by a client. JSON numbers and strings are both
// accepted; the text is parsed later so bad input reports the same way for
// query strings and bodies.
type hueValue string

func (v *hueValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = hueValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = hueValue(n)
	return nil
}

// pointResponse mirrors the OpenAPI schema for conversions.
type pointResponse struct {
	Hue   float64   `json:"hue"`
	Point hue.Point `json:"point"`
}

// blendResponse mirrors the OpenAPI schema for GET|POST /blend.
type blendResponse struct {
	Hue        float64        `json:"hue"`
	Midpoint   hue.Point      `json:"midpoint"`
	Resultant  float64        `json:"resultant"`
	Degenerate bool           `json:"degenerate"`
	Swatch     display.Swatch `json:"swatch"`
}

func newBlendResponse(res blend.Result) blendResponse {
	out := blendResponse{
		Hue:        res.Hue.Degrees(),
		Midpoint:   res.Midpoint,
		Resultant:  res.Resultant,
		Degenerate: res.Degenerate,
	}
	if sw, err := display.AngleSwatch(res.Hue); err == nil {
		out.Swatch = sw
	}
	return out
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: w.Header().Get(HeaderRequestID),
	})
}

// writeKindError picks the status and code from the error's kind.
func writeKindError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func methodNotAllowed(w http.ResponseWriter, op string, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeKindError(w, NewKind(op, ErrMethodNotAllowed))
}
