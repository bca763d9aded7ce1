// Package display owns the presentation state of the blend page: the two
// hue inputs as typed, the current average hue, and the swatches derived from
// them. The state only changes through blend results; views observe it via
// snapshots.
package display

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/hueblend/internal/diagnostics"
	"github.com/okian/hueblend/internal/domain/blend"
	"github.com/okian/hueblend/internal/domain/hue"
)

// Number of hue inputs on the page.
const InputCount = 2

const defaultMaxSubscribers = 64

// Blender computes the blended hue of two angles.
type Blender interface {
	Blend(ctx context.Context, x, y hue.Angle) (blend.Result, error)
}

// Input is one hue field as the user typed it.
type Input struct {
	Raw    string  `json:"raw"`
	Valid  bool    `json:"valid"`
	Swatch *Swatch `json:"swatch,omitempty"`
}

// Snapshot is a consistent copy of the display state.
type Snapshot struct {
	Version    uint64            `json:"version"`
	Inputs     [InputCount]Input `json:"inputs"`
	Average    float64           `json:"average"`
	Swatch     Swatch            `json:"swatch"`
	Degenerate bool              `json:"degenerate"`
	Error      string            `json:"error,omitempty"`
}

// Display holds the page state. Safe for concurrent use.
type Display struct {
	mu sync.RWMutex

	blender        Blender
	recorder       diagnostics.Recorder
	maxSubscribers int

	inputs     [InputCount]string
	average    float64
	degenerate bool
	lastErr    string
	version    uint64

	subs   map[string]chan Snapshot
	closed bool
}

// New creates a Display. The average starts at 0° until the first blend.
func New(blender Blender, opts ...Option) *Display {
	d := &Display{
		blender:        blender,
		recorder:       diagnostics.Nop,
		maxSubscribers: defaultMaxSubscribers,
		inputs:         [InputCount]string{"0", "0"},
		subs:           make(map[string]chan Snapshot),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetInput replaces one input and re-blends. index is 0 or 1.
func (d *Display) SetInput(ctx context.Context, index int, raw string) (Snapshot, error) {
	if index < 0 || index >= InputCount {
		return d.Snapshot(), fmt.Errorf("%w: %d", ErrUnknownInput, index)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs[index] = raw
	return d.blendLocked(ctx)
}

// SetInputs replaces the given inputs (nil leaves one untouched) and
// re-blends once.
func (d *Display) SetInputs(ctx context.Context, hue0, hue1 *string) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if hue0 != nil {
		d.inputs[0] = *hue0
	}
	if hue1 != nil {
		d.inputs[1] = *hue1
	}
	return d.blendLocked(ctx)
}

// Blend re-blends the current inputs.
func (d *Display) Blend(ctx context.Context) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blendLocked(ctx)
}

// blendLocked parses both inputs and, when both are valid, replaces the
// average. Invalid input leaves the previous average in place.
func (d *Display) blendLocked(ctx context.Context) (Snapshot, error) {
	if d.closed {
		return d.snapshotLocked(ctx, diagnostics.Nop), ErrClosed
	}
	d.version++

	a, errA := hue.ParseDegrees(d.inputs[0])
	b, errB := hue.ParseDegrees(d.inputs[1])
	if err := errors.Join(errA, errB); err != nil {
		msg := fmt.Sprintf("Cannot blend colors: Invalid or missing hue(s): %q, %q", d.inputs[0], d.inputs[1])
		d.recorder.Record(ctx, diagnostics.Error, msg)
		d.lastErr = msg
		snap := d.snapshotLocked(ctx, d.recorder)
		d.publishLocked(snap)
		return snap, err
	}

	res, err := d.blender.Blend(ctx, a, b)
	if err != nil {
		d.recorder.Record(ctx, diagnostics.Error, fmt.Sprintf("Cannot blend colors: %v", err))
		d.lastErr = err.Error()
		snap := d.snapshotLocked(ctx, d.recorder)
		d.publishLocked(snap)
		return snap, err
	}

	d.average = res.Hue.Degrees()
	d.degenerate = res.Degenerate
	d.lastErr = ""
	snap := d.snapshotLocked(ctx, d.recorder)
	d.publishLocked(snap)
	return snap, nil
}

// Snapshot returns the current state.
func (d *Display) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshotLocked(context.Background(), diagnostics.Nop)
}

// Average returns the current average hue in degrees.
func (d *Display) Average() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.average
}

// snapshotLocked copies the state; out-of-range inputs are reported to rec.
func (d *Display) snapshotLocked(ctx context.Context, rec diagnostics.Recorder) Snapshot {
	snap := Snapshot{
		Version:    d.version,
		Average:    d.average,
		Degenerate: d.degenerate,
		Error:      d.lastErr,
	}
	for i, raw := range d.inputs {
		snap.Inputs[i] = inputFor(ctx, rec, raw)
	}
	// The average always comes out of hue.FromPoint, so it is in range.
	if sw, err := NewSwatch(d.average); err == nil {
		snap.Swatch = sw
	}
	return snap
}

func inputFor(ctx context.Context, rec diagnostics.Recorder, raw string) Input {
	in := Input{Raw: raw}
	a, err := hue.ParseDegrees(raw)
	if err != nil {
		return in
	}
	in.Valid = true
	sw, err := NewSwatch(a.Degrees())
	if errors.Is(err, ErrHueOutOfRange) {
		rec.Record(ctx, diagnostics.Warning, fmt.Sprintf("Hue %v is outside [0, 360]; previewing it wrapped.", a.Degrees()))
		sw, err = AngleSwatch(a)
	}
	if err == nil {
		in.Swatch = &sw
	}
	return in
}

// Subscribe registers a listener for snapshots. The current snapshot is
// delivered immediately. Slow listeners only ever see the latest snapshot.
func (d *Display) Subscribe(buffer int) (string, <-chan Snapshot, func(), error) {
	if buffer < 1 {
		buffer = 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", nil, nil, ErrClosed
	}
	if len(d.subs) >= d.maxSubscribers {
		return "", nil, nil, fmt.Errorf("%w: limit %d", ErrTooManySubscribers, d.maxSubscribers)
	}

	id := uuid.NewString()
	ch := make(chan Snapshot, buffer)
	ch <- d.snapshotLocked(context.Background(), diagnostics.Nop)
	d.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if c, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(c)
			}
		})
	}
	return id, ch, cancel, nil
}

// Subscribers returns the number of active listeners.
func (d *Display) Subscribers() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}

// Close disconnects all listeners. Further updates fail with ErrClosed.
func (d *Display) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
	}
}

func (d *Display) publishLocked(snap Snapshot) {
	for _, ch := range d.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Full: drop the stale snapshot and retry once.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
