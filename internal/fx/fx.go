// Package fx provides a tweening primitive: it interpolates a scalar from one
// value to another over a fixed duration, shaping progress with a Transition
// and reporting every intermediate value through a frame callback.
//
// Each animation runs on its own goroutine. Frames of one Tween are never
// delivered concurrently, and a run superseded under LinkCancel has fully
// stopped before its replacement delivers its first frame.
package fx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Defaults
const (
	DefaultDuration = 500 * time.Millisecond
	DefaultFPS      = 50
)

// ErrUnknownLink is returned when a link policy name cannot be resolved.
var ErrUnknownLink = errors.New("unknown link policy")

// Link decides what Start does while an animation is already running.
type Link string

const (
	// LinkCancel stops the running animation and starts the new one.
	LinkCancel Link = "cancel"
	// LinkIgnore drops the new request.
	LinkIgnore Link = "ignore"
	// LinkChain queues the new request behind the running animation.
	LinkChain Link = "chain"
)

// ParseLink resolves a link policy name. The empty string means LinkCancel.
func ParseLink(s string) (Link, error) {
	switch Link(strings.ToLower(strings.TrimSpace(s))) {
	case "", LinkCancel:
		return LinkCancel, nil
	case LinkIgnore:
		return LinkIgnore, nil
	case LinkChain:
		return LinkChain, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLink, s)
	}
}

var namedDurations = map[string]time.Duration{
	"short":  250 * time.Millisecond,
	"normal": 500 * time.Millisecond,
	"long":   time.Second,
}

// ParseDuration accepts "short", "normal", "long" or a time.ParseDuration string.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, ok := namedDurations[strings.ToLower(s)]; ok {
		return d, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

// Options configures a Tween. Zero values are replaced with defaults.
type Options struct {
	// Duration of one animation. Default: DefaultDuration.
	Duration time.Duration

	// FPS is the frame rate. Default: DefaultFPS.
	FPS int

	// Transition shapes progress. Default: DefaultTransition.
	Transition Transition

	// Link is the overlap policy. Default: LinkCancel.
	Link Link

	// OnFrame receives every intermediate value, ending with the target.
	OnFrame func(v float64)

	// OnStart, OnComplete and OnCancel are optional lifecycle hooks.
	OnStart    func(from, to float64)
	OnComplete func(to float64)
	OnCancel   func()

	Logger *slog.Logger
}

type segment struct {
	from, to float64
}

type run struct {
	id     string
	seg    segment
	cancel context.CancelFunc
	done   chan struct{}
}

// Tween animates a scalar between two values.
type Tween struct {
	opts Options
	log  *slog.Logger

	mu     sync.Mutex
	now    float64
	target float64
	run    *run
	queue  []float64
}

// New creates a Tween.
func New(opts Options) *Tween {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Transition == nil {
		opts.Transition = DefaultTransition
	}
	if opts.Link == "" {
		opts.Link = LinkCancel
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Tween{
		opts: opts,
		log:  opts.Logger.With("component", "fx"),
	}
}

// Start animates from -> to. It reports false when the request was dropped
// under LinkIgnore. A request queued under LinkChain begins at the value the
// previous animation finished at, not at from.
func (t *Tween) Start(from, to float64) bool {
	return t.StartWith(func() float64 { return from }, to)
}

// StartWith is Start with the origin resolved late: from is called once any
// superseded animation has delivered its last frame, just before the new one
// launches. It is not called for dropped or queued requests. from must not
// call back into the Tween.
func (t *Tween) StartWith(from func() float64, to float64) bool {
	t.mu.Lock()
	for t.run != nil {
		switch t.opts.Link {
		case LinkIgnore:
			id := t.run.id
			t.mu.Unlock()
			t.log.Debug("animation ignored", "run_id", id, "to", to)
			return false
		case LinkChain:
			t.queue = append(t.queue, to)
			t.mu.Unlock()
			return true
		}

		prev := t.run
		t.run = nil
		t.queue = nil
		t.mu.Unlock()
		t.stop(prev)
		t.mu.Lock()
	}

	t.launch(segment{from: from(), to: to})
	t.mu.Unlock()
	return true
}

// Cancel stops the running animation and drops queued ones.
func (t *Tween) Cancel() {
	t.mu.Lock()
	r := t.run
	t.run = nil
	t.queue = nil
	t.mu.Unlock()

	if r != nil {
		t.stop(r)
	}
}

// Wait blocks until no animation is running or queued.
func (t *Tween) Wait() {
	for {
		t.mu.Lock()
		r := t.run
		t.mu.Unlock()
		if r == nil {
			return
		}
		<-r.done
	}
}

// Running reports whether an animation is in flight.
func (t *Tween) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.run != nil
}

// Now returns the most recently delivered value.
func (t *Tween) Now() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

// Target returns the destination of the current or last animation.
func (t *Tween) Target() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// launch must be called with mu held.
func (t *Tween) launch(seg segment) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		id:     uuid.NewString(),
		seg:    seg,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	t.run = r
	t.target = seg.to

	t.log.Debug("animation started", "run_id", r.id, "from", seg.from, "to", seg.to)
	go t.loop(ctx, r)
}

func (t *Tween) stop(r *run) {
	r.cancel()
	<-r.done
	t.log.Debug("animation cancelled", "run_id", r.id)
	if t.opts.OnCancel != nil {
		t.opts.OnCancel()
	}
}

func (t *Tween) loop(ctx context.Context, r *run) {
	ticker := time.NewTicker(time.Second / time.Duration(t.opts.FPS))
	defer ticker.Stop()

	if t.opts.OnStart != nil {
		t.opts.OnStart(r.seg.from, r.seg.to)
	}

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			close(r.done)
			return
		case now := <-ticker.C:
			if ctx.Err() != nil {
				close(r.done)
				return
			}
			elapsed := now.Sub(start)
			if elapsed >= t.opts.Duration {
				t.step(r.seg.to)
				t.complete(r)
				return
			}
			p := t.opts.Transition(float64(elapsed) / float64(t.opts.Duration))
			t.step(compute(r.seg.from, r.seg.to, p))
		}
	}
}

func (t *Tween) step(v float64) {
	t.mu.Lock()
	t.now = v
	t.mu.Unlock()

	if t.opts.OnFrame != nil {
		t.opts.OnFrame(v)
	}
}

func (t *Tween) complete(r *run) {
	t.mu.Lock()
	if t.run == r {
		if len(t.queue) > 0 {
			next := t.queue[0]
			t.queue = t.queue[1:]
			t.launch(segment{from: r.seg.to, to: next})
		} else {
			t.run = nil
		}
	}
	t.mu.Unlock()

	t.log.Debug("animation complete", "run_id", r.id, "to", r.seg.to)
	if t.opts.OnComplete != nil {
		t.opts.OnComplete(r.seg.to)
	}
	close(r.done)
}

func compute(from, to, p float64) float64 {
	return (to-from)*p + from
}
