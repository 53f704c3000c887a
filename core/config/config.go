package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/metadata"
	"github.com/tristendillon/pyns/core/models"
)

const (
	FileName  = "pyns.yaml"
	EnvPrefix = "PYNS"

	SourceFile = "file"
	SourceExec = "exec"
)

type Config struct {
	OutputDir    string   `mapstructure:"output_dir"`
	OutputFname  string   `mapstructure:"output_fname"`
	NsPrefix     string   `mapstructure:"ns_prefix"`
	NsSymbol     string   `mapstructure:"ns_symbol"`
	PreserveCase bool     `mapstructure:"preserve_case"`
	Remaps       []string `mapstructure:"remaps"`
	Exclude      []string `mapstructure:"exclude"`
	Targets      []string `mapstructure:"targets"`
	Source       Source   `mapstructure:"source"`
}

// Source selects where metadata dumps come from.
type Source struct {
	Kind     string `mapstructure:"kind"`
	Metadata string `mapstructure:"metadata"`
	Command  string `mapstructure:"command"`
}

func Default() *Config {
	return &Config{
		OutputDir: models.DefaultOutputDir,
		NsPrefix:  models.DefaultNsPrefix,
		Source: Source{
			Kind:     SourceFile,
			Metadata: "metadata",
		},
	}
}

// SetDefaults registers every key so PYNS_* environment variables apply even
// when the config file leaves a key out.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("output_fname", "")
	v.SetDefault("ns_prefix", def.NsPrefix)
	v.SetDefault("ns_symbol", "")
	v.SetDefault("preserve_case", false)
	v.SetDefault("source.kind", def.Source.Kind)
	v.SetDefault("source.metadata", def.Source.Metadata)
	v.SetDefault("source.command", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config at path. An empty path looks for pyns.yaml in the
// working directory and falls back to the defaults when there is none.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WrapIO(err, "cannot determine working dir")
		}
		candidate := filepath.Join(wd, FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	v := newViper()
	if path == "" {
		logger.Debug("No config file found, using default config")
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Configurationf("failed to read config file %s: %v", path, err),
				"pyns init <dir> writes a sample pyns.yaml",
			)
		}
		logger.Debug("Config file found: %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Configurationf("failed to parse config: %v", err)
	}
	logger.Debug("Config: %+v", cfg)

	return &cfg, nil
}

// ParseRemaps turns "from=to" pairs into a remap table. Pairs split at the
// first '=', so the Python name cannot contain one.
func ParseRemaps(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	remaps := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, errors.Configurationf("invalid remap %q, expected from=to", pair)
		}
		remaps[from] = to
	}
	return remaps, nil
}

func (c *Config) ToOptions() (models.Options, error) {
	remaps, err := ParseRemaps(c.Remaps)
	if err != nil {
		return models.Options{}, err
	}
	opts := models.Options{
		OutputFname:      c.OutputFname,
		OutputDir:        c.OutputDir,
		NsSymbol:         c.NsSymbol,
		NsPrefix:         c.NsPrefix,
		SymbolNameRemaps: remaps,
		Exclude:          c.Exclude,
		PreserveCase:     c.PreserveCase,
	}
	return opts.WithDefaults(), nil
}

// NewSource builds the metadata source the config selects.
func (c *Config) NewSource() (metadata.Source, error) {
	switch c.Source.Kind {
	case "", SourceFile:
		dir := c.Source.Metadata
		if dir == "" {
			dir = Default().Source.Metadata
		}
		return metadata.NewFileSource(dir), nil
	case SourceExec:
		if strings.TrimSpace(c.Source.Command) == "" {
			return nil, errors.WithHint(
				errors.Configurationf("source kind %q needs a command", SourceExec),
				"set source.command or pass --command",
			)
		}
		return metadata.NewExecSource(c.Source.Command), nil
	default:
		return nil, errors.Configurationf("unknown source kind %q, expected %s or %s", c.Source.Kind, SourceFile, SourceExec)
	}
}
