package cmd

import (
	"bytes"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check [targets...]",
	Short: "Check if generated namespaces are up to date",
	Long: `Renders every target in memory and compares the result with the file
on disk. Nothing is written.

Exit codes:
  0 - Namespaces are up to date
  1 - A namespace is missing or stale, or the check failed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("check called")
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		targets, err := s.targets(args)
		if err != nil {
			return err
		}

		var stale []string
		for _, target := range targets {
			want, res, err := s.generator.Render(cmd.Context(), target, s.opts)
			if err != nil {
				return errors.Wrapf(err, "failed to render %s", target)
			}

			have, err := os.ReadFile(res.Plan.TargetPath)
			switch {
			case os.IsNotExist(err):
				pterm.Error.Printf("%s: %s is missing\n", target, res.Plan.TargetPath)
				stale = append(stale, target)
			case err != nil:
				return errors.WrapIO(err, "failed to read %s", res.Plan.TargetPath)
			case !bytes.Equal(have, want):
				pterm.Error.Printf("%s: %s is out of date\n", target, res.Plan.TargetPath)
				stale = append(stale, target)
			default:
				pterm.Success.Printf("%s: %s is up to date\n", target, res.Plan.TargetPath)
			}
		}

		if len(stale) > 0 {
			return errors.WithHint(
				errors.Newf("%d of %d namespaces are out of date", len(stale), len(targets)),
				"run 'pyns generate' to update them",
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addGenerationFlags(checkCmd)
}
