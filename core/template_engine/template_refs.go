package template_engine

type namespaceTemplates struct {
	Ref         TemplateRef
	FILE_GO     TemplateRef
	SCALAR_GO   TemplateRef
	DEFERRED_GO TemplateRef
	CALLABLE_GO TemplateRef
}

type initTemplates struct {
	Ref TemplateRef
}

var TEMPLATES = struct {
	INIT      initTemplates
	NAMESPACE namespaceTemplates
}{
	INIT: initTemplates{
		Ref: TemplateRef{Path: "init", IsDir: true},
	},
	NAMESPACE: namespaceTemplates{
		Ref:         TemplateRef{Path: "namespace", IsDir: true},
		FILE_GO:     TemplateRef{Path: "namespace/file.go.tmpl"},
		SCALAR_GO:   TemplateRef{Path: "namespace/scalar.go.tmpl"},
		DEFERRED_GO: TemplateRef{Path: "namespace/deferred.go.tmpl"},
		CALLABLE_GO: TemplateRef{Path: "namespace/callable.go.tmpl"},
	},
}
