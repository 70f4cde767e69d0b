package cmd

import (
	"github.com/spf13/cobra"

	"github.com/misterram/mediacore/cmd/internal"
	"github.com/misterram/mediacore/internal/slogutil"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set VALUE",
		Short: "Render a single value",
		Long:  "Render VALUE (a percentage) without animation and print the element state.",
		Args:  cobra.ExactArgs(1),
		RunE:  runSet,
	}
	addRenderFlags(cmd)
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	value, err := parseNumber(args[0])
	if err != nil {
		return err
	}

	cfg, logger, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	ctx := slogutil.With(cmd.Context(), "command", "set")
	sc, err := buildScene(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sc.ind.Close()

	sc.ind.Set(value)
	logger.DebugContext(ctx, "value rendered", "value", value)

	state := sc.state()
	state.Target = state.Value
	return internal.WriteState(cmd.OutOrStdout(), state, rootOutput)
}
