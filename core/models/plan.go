package models

// GenerationPlan is derived once per run from the target and options.
type GenerationPlan struct {
	// Target is the original target specifier, e.g. "my-mod".
	Target string
	// ModuleSymbol keeps the specifier's characters, e.g. "python.my-mod".
	ModuleSymbol string
	// PackageName is the Go package clause, the last path segment.
	PackageName string
	// TargetPath is the file the namespace is written to.
	TargetPath string
	// ModuleDoc is the foreign object's docstring, nil when it has none.
	ModuleDoc *string
}

func (p GenerationPlan) WithDoc(doc *string) GenerationPlan {
	p.ModuleDoc = doc
	return p
}
