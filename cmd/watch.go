package cmd

import (
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tristendillon/pyns/core/config"
	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/metadata"
	"github.com/tristendillon/pyns/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [targets...]",
	Short: "Regenerate namespaces whenever their metadata dumps change",
	Long: `Watches the metadata directory of the file source and regenerates a
target whenever the content of its dump changes. Without targets every dump in
the directory is generated and watched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if s.cfg.Source.Kind == config.SourceExec {
			return errors.Configurationf("watch needs the %s source, the %s source has no dumps to watch", config.SourceFile, config.SourceExec)
		}
		if s.opts.OutputFname != "" {
			return errors.Configurationf("--output-fname cannot be combined with watch")
		}

		dir := s.cfg.Source.Metadata
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return errors.WithHint(
				errors.Configurationf("metadata directory %s does not exist", dir),
				"pyns init <dir> scaffolds one",
			)
		}

		selected := args
		if len(selected) == 0 {
			selected = s.cfg.Targets
		}
		only := make(map[string]bool, len(selected))
		for _, t := range selected {
			only[t] = true
		}

		fw, err := watcher.NewFileWatcher(dir, metadata.DumpExtensions)
		if err != nil {
			return err
		}
		defer fw.Close()

		tracker := watcher.NewDumpTracker(metadata.NewFileSource(dir))
		var mu sync.Mutex
		regenerate := func(targets []string) {
			mu.Lock()
			defer mu.Unlock()
			for _, target := range targets {
				if len(only) > 0 && !only[target] {
					continue
				}
				if _, err := s.generator.Generate(cmd.Context(), target, s.opts); err != nil {
					logger.Error("Failed to generate %s: %v", target, err)
				}
			}
		}

		fw.FileWatcher.AddOnStartFunc(func() error {
			targets, err := tracker.Scan()
			if err != nil {
				return err
			}
			regenerate(targets)
			logger.Info("Watching %s for metadata changes", dir)
			return nil
		})
		fw.FileWatcher.AddOnChangeFunc(func(paths []string) error {
			regenerate(tracker.Changed(paths))
			return nil
		})
		fw.FileWatcher.AddOnCloseFunc(func() error {
			logger.Info("Stopped watching %s", dir)
			return nil
		})

		return fw.Watch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addGenerationFlags(watchCmd)
}
