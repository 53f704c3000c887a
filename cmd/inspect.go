package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tristendillon/pyns/core/logger"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <target>",
	Short: "Show how each attribute of a target would be emitted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("inspect called")
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		res, err := s.generator.Inspect(cmd.Context(), args[0], s.opts)
		if err != nil {
			return err
		}

		pterm.DefaultHeader.WithFullWidth().Printf("%s -> %s", res.Plan.ModuleSymbol, res.Plan.TargetPath)
		pterm.Info.Printf("package %s, %d declarations\n", res.Plan.PackageName, len(res.Declarations))

		data := pterm.TableData{{"Attribute", "Identifier", "Kind"}}
		for _, d := range res.Declarations {
			data = append(data, []string{d.Name, d.HostID, d.Kind.String()})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}

		if len(res.Skipped) > 0 {
			pterm.Warning.Printf("Absent on the live object: %s\n", strings.Join(res.Skipped, ", "))
		}
		if len(res.Collisions) > 0 {
			pterm.Warning.Printf("Identifier already declared, remap: %s\n", strings.Join(res.Collisions, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addGenerationFlags(inspectCmd)
}
