package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/misterram/mediacore/cmd/internal"
	"github.com/misterram/mediacore/internal/config"
	"github.com/misterram/mediacore/internal/dom"
	"github.com/misterram/mediacore/internal/fx"
	"github.com/misterram/mediacore/internal/imageload"
	"github.com/misterram/mediacore/internal/progressbar"
)

// Render flags, shared by set and animate
var (
	renderURL        string
	renderNoFit      bool
	renderWidth      float64
	renderDuration   string
	renderFPS        int
	renderTransition string
	renderLink       string
	renderLabel      string
)

// barElementID identifies the bar element in the headless document.
const barElementID = "progress-bar"

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&renderURL, "url", "", "fill image URL or local path")
	f.BoolVar(&renderNoFit, "no-fit", false, "do not measure the fill image")
	f.Float64Var(&renderWidth, "width", 0, "element width in pixels (0 uses config)")
	f.StringVar(&renderDuration, "duration", "", "animation duration: short, normal, long or e.g. 750ms")
	f.IntVar(&renderFPS, "fps", 0, "frames per second (0 uses config)")
	f.StringVar(&renderTransition, "transition", "", "easing transition, e.g. circ:out (see 'transitions')")
	f.StringVar(&renderLink, "link", "", "overlap policy: cancel, ignore or chain")
	f.StringVar(&renderLabel, "label", "", "identifier of the label element")
}

// applyRenderFlags overrides configured values with flags that were given.
func applyRenderFlags(p *config.ProgressConfig) {
	if renderURL != "" {
		p.URL = renderURL
	}
	if renderNoFit {
		p.Fit = false
	}
	if renderWidth > 0 {
		p.Width = renderWidth
	}
	if renderDuration != "" {
		p.Duration = renderDuration
	}
	if renderFPS > 0 {
		p.FPS = renderFPS
	}
	if renderTransition != "" {
		p.Transition = renderTransition
	}
	if renderLink != "" {
		p.Link = renderLink
	}
	if renderLabel != "" {
		p.Label = renderLabel
	}
}

// scene is a headless document holding one progress bar and its label.
type scene struct {
	bar   *dom.Node
	label *dom.Node
	ind   *progressbar.Indicator
}

func buildScene(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*scene, error) {
	p := cfg.Progress
	applyRenderFlags(&p)

	transition, err := fx.ParseTransition(p.Transition)
	if err != nil {
		return nil, err
	}
	link, err := fx.ParseLink(p.Link)
	if err != nil {
		return nil, err
	}
	duration, err := fx.ParseDuration(p.Duration)
	if err != nil {
		return nil, err
	}

	loader, err := imageload.NewLoader(imageload.Options{
		CacheSize: cfg.Images.CacheSize,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	doc := dom.NewRegistry()
	sc := &scene{bar: dom.NewNode(barElementID, p.Width)}
	doc.Add(barElementID, sc.bar)
	if p.Label != "" {
		sc.label = dom.NewNode(p.Label, 0)
		doc.Add(p.Label, sc.label)
	}

	// Resolve the fill image up front so the indicator fits synchronously.
	if p.Fit && p.URL != "" {
		if _, err := loader.Width(ctx, p.URL); err != nil {
			logger.WarnContext(ctx, "fill image unavailable, rendering unfitted", "url", p.URL, "error", err)
		}
	}

	opts := progressbar.DefaultOptions()
	opts.Text = p.Label
	opts.URL = p.URL
	opts.Transition = transition
	opts.Fit = p.Fit
	opts.Link = link
	opts.Duration = duration
	opts.FPS = p.FPS
	opts.Document = doc
	opts.Loader = loader
	opts.Logger = logger

	sc.ind = progressbar.New(ctx, sc.bar, opts)
	return sc, nil
}

func (s *scene) state() internal.State {
	fillWidth, fitted := s.ind.FillWidth()
	st := internal.State{
		Value:     s.ind.Value(),
		Target:    s.ind.Target(),
		Fitted:    fitted,
		FillWidth: fillWidth,
		Element:   s.bar.Snapshot(),
	}
	if s.label != nil {
		snap := s.label.Snapshot()
		st.Label = &snap
	}
	return st
}

func parseNumber(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", arg)
	}
	return v, nil
}
