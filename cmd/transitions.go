package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/misterram/mediacore/cmd/internal"
	"github.com/misterram/mediacore/internal/fx"
)

func newTransitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions",
		Short: "List easing transitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := fx.TransitionNames()
			out := cmd.OutOrStdout()

			if rootOutput == internal.FormatYAML {
				data, err := yaml.Marshal(names)
				if err != nil {
					return fmt.Errorf("encode transitions: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			for _, name := range names {
				_, _ = fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
