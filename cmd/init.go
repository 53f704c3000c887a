/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/template_engine"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Initialize a new pyns project",
	Long:  `Creates a pyns.yaml and a sample metadata dump in dir.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		dir := args[0]
		if _, err := os.Stat(dir); err == nil {
			if !force {
				fmt.Printf("Directory %s already exists. Use --force to overwrite.\n", dir)
				return nil
			}
			logger.Debug("Directory %s already exists. Overwriting.", dir)
			if err := os.RemoveAll(dir); err != nil {
				return errors.WrapIO(err, "failed to remove %s", dir)
			}
		}

		initData := map[string]string{
			"ProjectName": filepath.Base(dir),
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.WrapIO(err, "failed to create %s", dir)
		}
		engine := template_engine.NewTemplateEngine()
		if err := engine.GenerateFolder(template_engine.TEMPLATES.INIT.Ref, dir, initData); err != nil {
			return errors.Wrapf(err, "failed to generate project %s", dir)
		}
		fmt.Printf("Successfully generated project: %s\n", dir)

		fmt.Printf("Next Steps:\n")
		fmt.Printf("  - cd %s\n", dir)
		fmt.Printf("  - pyns generate\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}
