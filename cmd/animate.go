package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterram/mediacore/cmd/internal"
	"github.com/misterram/mediacore/internal/dom"
	"github.com/misterram/mediacore/internal/slogutil"
)

// Animate command flags
var (
	animateFrom float64
	animateThen []float64
)

func newAnimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animate VALUE [TOTAL]",
		Short: "Animate the bar toward a target",
		Long: `Animate the bar toward a target and print the final state.

With one argument VALUE is a percentage, clamped to 0-100.
With two arguments the target is VALUE/TOTAL*100 and is not clamped.

--then starts further animations right away; what happens to the one in
flight depends on --link (cancel, ignore or chain).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runAnimate,
	}
	addRenderFlags(cmd)
	cmd.Flags().Float64Var(&animateFrom, "from", 0, "value to render before animating")
	cmd.Flags().Float64SliceVar(&animateThen, "then", nil, "further percentage targets started after the first")
	return cmd
}

func runAnimate(cmd *cobra.Command, args []string) error {
	value, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	var total float64
	if len(args) == 2 {
		if total, err = parseNumber(args[1]); err != nil {
			return err
		}
		if total == 0 {
			return fmt.Errorf("total must not be zero")
		}
	}

	cfg, logger, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	ctx := slogutil.With(cmd.Context(), "command", "animate")
	sc, err := buildScene(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sc.ind.Close()

	out := cmd.OutOrStdout()
	live := rootOutput != internal.FormatYAML && internal.IsTerminalWriter(out)
	if live {
		barWidth := internal.TerminalWidth(out) - 8
		if barWidth > 50 {
			barWidth = 50
		}
		sc.bar.Observe(func(s dom.Snapshot) {
			_, _ = fmt.Fprintf(out, "\r%s %4s", internal.ProgressBar(sc.ind.Value(), barWidth), s.Attributes[dom.AttrTitle])
		})
	}

	if cmd.Flags().Changed("from") {
		sc.ind.Set(animateFrom)
	}

	if len(args) == 2 {
		sc.ind.StartRatio(value, total)
	} else {
		sc.ind.Start(value)
	}
	for _, next := range animateThen {
		sc.ind.Start(next)
	}
	logger.DebugContext(ctx, "animation requested", "value", value, "total", total, "then", animateThen)

	done := make(chan struct{})
	go func() {
		sc.ind.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		sc.ind.Close()
		<-done
		return ctx.Err()
	}

	if live {
		_, _ = fmt.Fprintln(out)
	}

	logger.InfoContext(ctx, "animation finished", "value", sc.ind.Value(), "target", sc.ind.Target())
	return internal.WriteState(out, sc.state(), rootOutput)
}
