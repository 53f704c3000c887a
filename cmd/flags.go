package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tristendillon/pyns/core/config"
	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/generator"
	"github.com/tristendillon/pyns/core/models"
	"github.com/tristendillon/pyns/core/planner"
)

// generationFlags override pyns.yaml for one invocation. Only flags the user
// actually set take effect.
type generationFlags struct {
	outputFname  string
	outputDir    string
	nsSymbol     string
	nsPrefix     string
	remaps       []string
	exclude      []string
	preserveCase bool
	source       string
	metadata     string
	command      string
}

var genFlags generationFlags

func addGenerationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&genFlags.outputFname, "output-fname", "", "Write the namespace to this file instead of deriving a path")
	f.StringVar(&genFlags.outputDir, "output-dir", models.DefaultOutputDir, "Root directory of derived output paths")
	f.StringVar(&genFlags.nsSymbol, "ns-symbol", "", "Module symbol to use instead of <ns-prefix>.<target>")
	f.StringVar(&genFlags.nsPrefix, "ns-prefix", models.DefaultNsPrefix, "Prefix of the derived module symbol")
	f.StringArrayVar(&genFlags.remaps, "remap", nil, "Rename an attribute, as python_name=GoName (repeatable)")
	f.StringSliceVar(&genFlags.exclude, "exclude", nil, "Identifiers declared as shadowed (default: Go's predeclared names)")
	f.BoolVar(&genFlags.preserveCase, "preserve-case", false, "Keep attribute names verbatim instead of exporting them")
	f.StringVar(&genFlags.source, "source", config.SourceFile, "Metadata source: file or exec")
	f.StringVar(&genFlags.metadata, "metadata", "metadata", "Directory of metadata dumps for the file source")
	f.StringVar(&genFlags.command, "command", "", "Introspection command for the exec source; the target is appended")
}

func (g generationFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output-fname") {
		cfg.OutputFname = g.outputFname
	}
	if changed("output-dir") {
		cfg.OutputDir = g.outputDir
	}
	if changed("ns-symbol") {
		cfg.NsSymbol = g.nsSymbol
	}
	if changed("ns-prefix") {
		cfg.NsPrefix = g.nsPrefix
	}
	if changed("remap") {
		cfg.Remaps = append(cfg.Remaps, g.remaps...)
	}
	if changed("exclude") {
		cfg.Exclude = g.exclude
		if cfg.Exclude == nil {
			cfg.Exclude = []string{}
		}
	}
	if changed("preserve-case") {
		cfg.PreserveCase = g.preserveCase
	}
	if changed("source") {
		cfg.Source.Kind = g.source
	}
	if changed("metadata") {
		cfg.Source.Metadata = g.metadata
	}
	if changed("command") {
		cfg.Source.Command = g.command
	}
}

// session is what every generating command needs: the merged config, the
// options derived from it and a generator over the configured source.
type session struct {
	cfg       *config.Config
	opts      models.Options
	generator *generator.NamespaceGenerator
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	genFlags.apply(cmd, cfg)

	opts, err := cfg.ToOptions()
	if err != nil {
		return nil, err
	}
	src, err := cfg.NewSource()
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:       cfg,
		opts:      opts,
		generator: generator.NewNamespaceGenerator(src),
	}, nil
}

// targets returns args, or the configured targets when none were given.
func (s *session) targets(args []string) ([]string, error) {
	targets := args
	if len(targets) == 0 {
		targets = s.cfg.Targets
	}
	if len(targets) == 0 {
		return nil, errors.WithHint(
			errors.Configurationf("no targets given"),
			"pass targets as arguments or list them under targets: in pyns.yaml",
		)
	}
	if s.opts.OutputFname != "" && len(targets) > 1 {
		return nil, errors.Configurationf("--output-fname names one file but %d targets were given", len(targets))
	}

	plans := make([]models.GenerationPlan, 0, len(targets))
	for _, target := range targets {
		plan, err := planner.Resolve(target, s.opts)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := planner.CheckLayout(plans); err != nil {
		return nil, err
	}
	return targets, nil
}
