// Package progressbar implements a percentage indicator. It keeps a progress
// value in [0,100] and reflects it into an element's background position,
// its title, and optionally the text of a label element. Changes are animated
// through an fx.Tween.
//
// Until the fill image width is known the indicator is unfitted and offsets
// the background by a percentage. Once the width resolves it switches, for
// good, to pixel offsets.
package progressbar

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/misterram/mediacore/internal/dom"
	"github.com/misterram/mediacore/internal/fx"
	"github.com/misterram/mediacore/internal/imageload"
)

// WidthLoader resolves image widths. *imageload.Loader implements it.
type WidthLoader interface {
	Load(ctx context.Context, url string, fn func(width int, err error)) *imageload.Subscription
}

// Options configures an Indicator. Start from DefaultOptions.
type Options struct {
	// Text is the identifier of a label element, looked up on every Set.
	Text string

	// URL of the fill image. When set it becomes the element's background.
	URL string

	Transition fx.Transition

	// Fit measures the fill image so offsets can be computed in pixels.
	Fit bool

	Link     fx.Link
	Duration time.Duration
	FPS      int

	// Document resolves Text. Without it the label is never updated.
	Document dom.Document

	// Loader resolves the fill image width. Without it the indicator stays unfitted.
	Loader WidthLoader

	Logger *slog.Logger
}

// DefaultOptions returns the default configuration: circ ease-out, fitting
// enabled, cancel link policy.
func DefaultOptions() Options {
	return Options{
		Transition: fx.DefaultTransition,
		Fit:        true,
		Link:       fx.LinkCancel,
		Duration:   fx.DefaultDuration,
		FPS:        fx.DefaultFPS,
	}
}

// Indicator is a percentage progress bar bound to one element.
type Indicator struct {
	el    dom.Element
	opts  Options
	log   *slog.Logger
	tween *fx.Tween

	// renderMu orders element writes. mu guards the fields below and is
	// never held while the element is written, so observers may read the
	// indicator.
	renderMu sync.Mutex

	mu        sync.Mutex
	current   float64
	fillWidth float64
	fitted    bool
	closed    bool
	sub       *imageload.Subscription
}

// New binds an Indicator to el. ctx bounds the fill image lookup.
func New(ctx context.Context, el dom.Element, opts Options) *Indicator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ind := &Indicator{
		el:   el,
		opts: opts,
		log:  opts.Logger.With("component", "progressbar"),
	}
	ind.tween = fx.New(fx.Options{
		Duration:   opts.Duration,
		FPS:        opts.FPS,
		Transition: opts.Transition,
		Link:       opts.Link,
		OnFrame:    func(v float64) { ind.Set(v) },
		Logger:     opts.Logger,
	})

	if opts.URL != "" {
		el.SetStyle(dom.StyleBackgroundImage, dom.CSSURL(opts.URL))
		el.SetStyle(dom.StyleBackgroundRepeat, "no-repeat")
	}

	if !opts.Fit {
		ind.Set(0)
		return ind
	}

	src := opts.URL
	if src == "" {
		src = dom.BackgroundImageURL(el.Style(dom.StyleBackgroundImage))
	}
	if src == "" || opts.Loader == nil {
		return ind
	}

	sub := opts.Loader.Load(ctx, src, func(width int, err error) {
		ind.fit(src, width, err)
	})

	ind.mu.Lock()
	ind.sub = sub
	ind.mu.Unlock()

	return ind
}

// Start animates toward percent, clamped to [0,100].
func (ind *Indicator) Start(percent float64) *Indicator {
	return ind.animate(clamp(percent))
}

// StartRatio animates toward value/total*100. The target is not clamped, so
// ratios above one aim past 100 and Target reports it. Every frame is clamped
// by Set, so the bar never shows the overshoot: it stops at 100% and spends
// the remaining time there. A zero total is ignored.
func (ind *Indicator) StartRatio(value, total float64) *Indicator {
	if total == 0 {
		ind.log.Warn("ignoring progress ratio with zero total", "value", value)
		return ind
	}
	return ind.animate(value / total * 100)
}

// Set renders v immediately. Element observers must not call Set or Close.
func (ind *Indicator) Set(v float64) *Indicator {
	ind.renderMu.Lock()
	defer ind.renderMu.Unlock()

	ind.mu.Lock()
	if ind.closed {
		ind.mu.Unlock()
		return ind
	}
	f := ind.nextFrame(v)
	ind.mu.Unlock()

	ind.apply(f)
	return ind
}

// Close stops any animation and pending image lookup. Later calls are no-ops.
func (ind *Indicator) Close() {
	ind.mu.Lock()
	if ind.closed {
		ind.mu.Unlock()
		return
	}
	ind.closed = true
	sub := ind.sub
	ind.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	ind.tween.Cancel()
}

// Value returns the last rendered value.
func (ind *Indicator) Value() float64 {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.current
}

// Target returns the destination of the current or last animation.
func (ind *Indicator) Target() float64 {
	return ind.tween.Target()
}

// Fitted reports whether the fill image width is known.
func (ind *Indicator) Fitted() bool {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.fitted
}

// FillWidth returns the fill image width once fitted.
func (ind *Indicator) FillWidth() (float64, bool) {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.fillWidth, ind.fitted
}

// Animating reports whether an animation is in flight.
func (ind *Indicator) Animating() bool {
	return ind.tween.Running()
}

// Wait blocks until running and queued animations have finished.
func (ind *Indicator) Wait() {
	ind.tween.Wait()
}

func (ind *Indicator) animate(target float64) *Indicator {
	ind.mu.Lock()
	if ind.closed {
		ind.mu.Unlock()
		return ind
	}
	ind.mu.Unlock()

	ind.tween.StartWith(ind.Value, target)
	return ind
}

func (ind *Indicator) fit(src string, width int, err error) {
	if err != nil || width <= 0 {
		ind.log.Debug("fill image not fitted", "url", src, "width", width, "error", err)
		return
	}

	ind.renderMu.Lock()
	defer ind.renderMu.Unlock()

	ind.mu.Lock()
	if ind.closed || ind.fitted {
		ind.mu.Unlock()
		return
	}
	ind.fillWidth = float64(width)
	ind.fitted = true
	f := ind.nextFrame(ind.current)
	ind.mu.Unlock()

	ind.log.Debug("fill image fitted", "url", src, "width", width)
	ind.apply(f)
}

// frame is one rendered state of the element.
type frame struct {
	position string
	label    string
}

// nextFrame stores v and computes what to draw. It must be called with mu held.
func (ind *Indicator) nextFrame(v float64) frame {
	v = clamp(v)
	ind.current = v
	return frame{
		position: ind.position(v) + " 0px",
		label:    percentLabel(v),
	}
}

// apply writes f to the elements. It must be called with renderMu held and
// mu released.
func (ind *Indicator) apply(f frame) {
	ind.el.SetStyle(dom.StyleBackgroundPosition, f.position)
	ind.el.SetAttribute(dom.AttrTitle, f.label)

	if el, ok := ind.label(); ok {
		el.SetText(f.label)
	}
}

func (ind *Indicator) position(v float64) string {
	if !ind.fitted {
		return strconv.FormatFloat(100-v, 'f', -1, 64) + "%"
	}

	width := ind.el.Width()
	if width == 0 {
		width = 1
	}
	offset := -ind.fillWidth/2 + v/100*width
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		offset = 0
	}
	return strconv.FormatInt(int64(round(offset)), 10) + "px"
}

func (ind *Indicator) label() (dom.Element, bool) {
	if ind.opts.Text == "" || ind.opts.Document == nil {
		return nil, false
	}
	return ind.opts.Document.ElementByID(ind.opts.Text)
}

func percentLabel(v float64) string {
	return strconv.FormatInt(int64(round(v)), 10) + "%"
}

// round rounds half up, so -2.5 becomes -2.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
