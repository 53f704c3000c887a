package models

const (
	DefaultOutputDir = "src"
	DefaultNsPrefix  = "python"
)

// Options controls one generation run. The zero value is usable; blanks are
// filled by WithDefaults.
type Options struct {
	OutputFname string
	OutputDir   string
	NsSymbol    string
	NsPrefix    string

	// SymbolNameRemaps maps foreign attribute names onto Go identifiers.
	SymbolNameRemaps map[string]string
	// Exclude lists the identifiers declared as intentionally shadowed.
	// nil selects the default list; an empty non-nil slice declares none.
	Exclude []string
	// PreserveCase keeps unmapped names verbatim instead of exporting them.
	PreserveCase bool
}

func DefaultOptions() Options {
	return Options{
		OutputDir: DefaultOutputDir,
		NsPrefix:  DefaultNsPrefix,
	}
}

func (o Options) WithDefaults() Options {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.NsPrefix == "" {
		o.NsPrefix = DefaultNsPrefix
	}
	return o
}
