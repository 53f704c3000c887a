/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate [targets...]",
	Short: "Generates the Go namespace of each target",
	Long: `Generates one Go file per target from its metadata. Targets default to
the targets listed in pyns.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("generate called")
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		targets, err := s.targets(args)
		if err != nil {
			return err
		}

		for _, target := range targets {
			res, err := s.generator.Generate(cmd.Context(), target, s.opts)
			if err != nil {
				return errors.Wrapf(err, "failed to generate %s", target)
			}
			if len(res.Skipped) > 0 {
				logger.Warn("%s: %d attributes absent on the live object were skipped", target, len(res.Skipped))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerationFlags(generateCmd)
}
