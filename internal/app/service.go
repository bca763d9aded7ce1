// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/hueblend/internal/diagnostics"
	"github.com/okian/hueblend/internal/display"
	"github.com/okian/hueblend/internal/domain/blend"
	"github.com/okian/hueblend/internal/domain/hue"
	"github.com/okian/hueblend/pkg/logger"
	"github.com/okian/hueblend/pkg/metrics"
)

const (
	defaultInitialHue1    = 120
	defaultStreamBuffer   = 8
	defaultMaxSubscribers = 64
)

// Service implements the API dependencies for the hue blender.
type Service struct {
	mu sync.RWMutex

	// Core components
	blender *blend.Blender
	display *display.Display

	// Configuration
	epsilon        float64
	initialHue0    float64
	initialHue1    float64
	streamBuffer   int
	maxSubscribers int

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger   logger.Logger
	recorder diagnostics.Recorder
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder routes blend diagnostics to r instead of the service logger.
func WithRecorder(r diagnostics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithEpsilon sets the midpoint length below which a blend is degenerate.
func WithEpsilon(eps float64) Option {
	return func(s *Service) {
		if eps > 0 {
			s.epsilon = eps
		}
	}
}

// WithInitialHues sets the display inputs shown before the first update.
func WithInitialHues(hue0, hue1 float64) Option {
	return func(s *Service) {
		s.initialHue0 = hue0
		s.initialHue1 = hue1
	}
}

// WithStreamBuffer sets the per-subscriber snapshot buffer.
func WithStreamBuffer(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.streamBuffer = size
		}
	}
}

// WithMaxSubscribers caps concurrent display subscribers.
func WithMaxSubscribers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSubscribers = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		epsilon:        blend.DefaultEpsilon,
		initialHue1:    defaultInitialHue1,
		streamBuffer:   defaultStreamBuffer,
		maxSubscribers: defaultMaxSubscribers,
		logger:         nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the blender and the display and performs the first blend.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		if l, ok := logger.Lookup(); ok {
			s.logger = l.Named("service")
		} else {
			s.logger = logger.Nop()
		}
	}
	if s.recorder == nil {
		s.recorder = diagnostics.FromLogger(s.logger)
	}

	s.logger.Info(ctx, "starting hue blend service...")

	s.blender = blend.New(
		blend.WithRecorder(s.recorder),
		blend.WithEpsilon(s.epsilon),
	)
	s.display = display.New(s.blender,
		display.WithRecorder(s.recorder),
		display.WithInitialInputs(formatHue(s.initialHue0), formatHue(s.initialHue1)),
		display.WithMaxSubscribers(s.maxSubscribers),
	)

	snap, err := s.display.Blend(ctx)
	if err != nil {
		s.display.Close()
		return fmt.Errorf("%w: initial blend: %w", ErrStart, err)
	}
	metrics.RecordDisplayUpdate(snap.Average)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "hue blend service started",
		logger.Float64("epsilon", s.epsilon),
		logger.Float64("average", snap.Average),
		logger.Int("maxSubscribers", s.maxSubscribers),
	)

	return nil
}

// Stop closes the display, disconnecting every subscriber.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping hue blend service...")
	s.display.Close()
	metrics.UpdateStreamSubscribers(0)

	s.started = false
	s.logger.Info(context.Background(), "hue blend service stopped")
}

// Blend averages two hues given as text, e.g. from a query string.
func (s *Service) Blend(ctx context.Context, raw0, raw1 string) (blend.Result, error) {
	b, err := s.blenderOrErr()
	if err != nil {
		return blend.Result{}, err
	}

	x, errX := hue.ParseDegrees(raw0)
	y, errY := hue.ParseDegrees(raw1)
	if err := errors.Join(errX, errY); err != nil {
		metrics.RecordBlendFailure(metrics.FailureInvalidAngle)
		return blend.Result{}, err
	}

	res, err := b.Blend(ctx, x, y)
	if err != nil {
		metrics.RecordBlendFailure(failureKind(err))
		return blend.Result{}, err
	}
	metrics.RecordBlend(res.Resultant, res.Degenerate)

	s.logger.Debug(ctx, "blended hues",
		logger.String("hue0", raw0),
		logger.String("hue1", raw1),
		logger.Float64("result", res.Hue.Degrees()),
		logger.Bool("degenerate", res.Degenerate),
	)
	return res, nil
}

// ToPoint converts a hue given as text to its point on the unit circle.
func (s *Service) ToPoint(ctx context.Context, raw string) (hue.Angle, hue.Point, error) {
	a, err := hue.ParseDegrees(raw)
	if err != nil {
		metrics.RecordErrorByType(metrics.FailureInvalidAngle, diagnostics.Warning.Label())
		return hue.Angle{}, hue.Point{}, err
	}
	return a, a.Point(), nil
}

// ToAngle converts a point to its hue. Missing coordinates are rejected.
func (s *Service) ToAngle(ctx context.Context, x, y *float64) (hue.Angle, error) {
	p, err := hue.PointFromXY(x, y)
	if err != nil {
		metrics.RecordErrorByType(metrics.FailureInvalidCoordinates, diagnostics.Warning.Label())
		return hue.Angle{}, err
	}
	a, err := hue.FromPoint(p)
	if err != nil {
		metrics.RecordErrorByType(metrics.FailureInvalidCoordinates, diagnostics.Warning.Label())
		return hue.Angle{}, err
	}
	return a, nil
}

// Snapshot returns the current display state.
func (s *Service) Snapshot(ctx context.Context) (display.Snapshot, error) {
	d, err := s.displayOrErr()
	if err != nil {
		return display.Snapshot{}, err
	}
	return d.Snapshot(), nil
}

// UpdateDisplay replaces the given display inputs and re-blends.
// A nil input is left as it is.
func (s *Service) UpdateDisplay(ctx context.Context, hue0, hue1 *string) (display.Snapshot, error) {
	d, err := s.displayOrErr()
	if err != nil {
		return display.Snapshot{}, err
	}
	var snap display.Snapshot
	switch {
	case hue0 != nil && hue1 == nil:
		snap, err = d.SetInput(ctx, 0, *hue0)
	case hue0 == nil && hue1 != nil:
		snap, err = d.SetInput(ctx, 1, *hue1)
	default:
		snap, err = d.SetInputs(ctx, hue0, hue1)
	}
	s.recordDisplay(snap, err)
	return snap, err
}

// BlendDisplay re-blends the display's current inputs.
func (s *Service) BlendDisplay(ctx context.Context) (display.Snapshot, error) {
	d, err := s.displayOrErr()
	if err != nil {
		return display.Snapshot{}, err
	}
	snap, err := d.Blend(ctx)
	s.recordDisplay(snap, err)
	return snap, err
}

// Subscribe registers a display listener. The returned cancel func must be
// called once the listener is done.
func (s *Service) Subscribe(ctx context.Context) (string, <-chan display.Snapshot, func(), error) {
	d, err := s.displayOrErr()
	if err != nil {
		return "", nil, nil, err
	}

	s.mu.RLock()
	buffer := s.streamBuffer
	s.mu.RUnlock()

	id, ch, cancel, err := d.Subscribe(buffer)
	if err != nil {
		return "", nil, nil, err
	}
	metrics.UpdateStreamSubscribers(d.Subscribers())
	s.logger.Debug(ctx, "display subscriber added", logger.String("id", id))

	return id, ch, func() {
		cancel()
		metrics.UpdateStreamSubscribers(d.Subscribers())
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"epsilon":        s.epsilon,
		"streamBuffer":   s.streamBuffer,
		"maxSubscribers": s.maxSubscribers,
	}

	if s.started {
		snap := s.display.Snapshot()
		subscribers := s.display.Subscribers()

		stats["average"] = snap.Average
		stats["degenerate"] = snap.Degenerate
		stats["version"] = snap.Version
		stats["subscribers"] = subscribers
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()

		metrics.UpdateStreamSubscribers(subscribers)
	}

	return stats
}

func (s *Service) recordDisplay(snap display.Snapshot, err error) {
	if err != nil {
		metrics.RecordBlendFailure(failureKind(err))
		return
	}
	metrics.RecordDisplayUpdate(snap.Average)
}

func (s *Service) blenderOrErr() (*blend.Blender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.blender, nil
}

func (s *Service) displayOrErr() (*display.Display, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.display, nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, hue.ErrInvalidAngle):
		return metrics.FailureInvalidAngle
	case errors.Is(err, hue.ErrInvalidCoordinates):
		return metrics.FailureInvalidCoordinates
	default:
		return metrics.FailureOther
	}
}

func formatHue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
