package template_engine

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/shared"
)

type TemplateRef struct {
	Path  string
	IsDir bool
}

func (tr TemplateRef) IsFile() bool {
	return !tr.IsDir
}

func (tr TemplateRef) IsDirectory() bool {
	return tr.IsDir
}

type TemplateEngine struct {
	funcMap template.FuncMap
	parsed  map[string]*template.Template
}

// goStringSlice renders a Go []string literal, or nil for a nil slice.
func goStringSlice(items []string) string {
	if items == nil {
		return "nil"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = shared.Quote(item)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"join":        strings.Join,
		"quote":       shared.Quote,
		"escapeDoc":   shared.EscapeDoc,
		"stringSlice": goStringSlice,
	}
}

func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		funcMap: getDefaultFuncMap(),
		parsed:  make(map[string]*template.Template),
	}
}

// load parses a template from TemplateFS once and reuses it afterwards.
func (te *TemplateEngine) load(templatePath string) (*template.Template, error) {
	if tmpl, ok := te.parsed[templatePath]; ok {
		return tmpl, nil
	}

	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read template file %s", templatePath)
	}

	tmpl, err := template.New(path.Base(templatePath)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse template %s", templatePath)
	}

	te.parsed[templatePath] = tmpl
	return tmpl, nil
}

// Render executes a file template into w.
func (te *TemplateEngine) Render(templateRef TemplateRef, w io.Writer, data interface{}) error {
	if templateRef.IsDirectory() {
		return errors.Newf("cannot render directory reference: %s", templateRef.Path)
	}

	tmpl, err := te.load(path.Join("templates", templateRef.Path))
	if err != nil {
		return err
	}

	if err := tmpl.Execute(w, data); err != nil {
		return errors.Wrapf(err, "failed to execute template %s", templateRef.Path)
	}
	return nil
}

func (te *TemplateEngine) RenderString(templateRef TemplateRef, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := te.Render(templateRef, &buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GenerateFolder materializes a template directory under outputDir. Files
// ending in .tmpl are executed with data and lose the suffix; other files are
// copied verbatim.
func (te *TemplateEngine) GenerateFolder(templateRef TemplateRef, outputDir string, data interface{}) error {
	if templateRef.IsFile() {
		return errors.Newf("cannot generate folder from file reference: %s", templateRef.Path)
	}

	templateDir := path.Join("templates", templateRef.Path)
	logger.Debug("Generating folder from template reference: %s", templateDir)

	return fs.WalkDir(TemplateFS, templateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if p == templateDir {
			return nil
		}

		relPath := strings.TrimPrefix(p, templateDir+"/")
		outputPath := filepath.Join(outputDir, filepath.FromSlash(relPath))

		if d.IsDir() {
			return errors.WrapIO(os.MkdirAll(outputPath, os.ModePerm), "create %s", outputPath)
		}

		logger.Debug("Generating file from path: %s", p)
		return te.generateFileFromPath(p, outputPath, data)
	})
}

func (te *TemplateEngine) generateFileFromPath(templatePath, outputPath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return errors.WrapIO(err, "failed to create output directory")
	}

	if !strings.HasSuffix(templatePath, ".tmpl") {
		content, err := TemplateFS.ReadFile(templatePath)
		if err != nil {
			return errors.Wrapf(err, "failed to read template file %s", templatePath)
		}
		return errors.WrapIO(os.WriteFile(outputPath, content, 0644), "write %s", outputPath)
	}

	outputPath = strings.TrimSuffix(outputPath, ".tmpl")

	tmpl, err := te.load(templatePath)
	if err != nil {
		return err
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return errors.WrapIO(err, "failed to create output file %s", outputPath)
	}
	defer outputFile.Close()

	if err := tmpl.Execute(outputFile, data); err != nil {
		return errors.Wrapf(err, "failed to execute template %s", templatePath)
	}

	return nil
}

func (te *TemplateEngine) ValidateTemplate(templateRef TemplateRef) error {
	templatePath := path.Join("templates", templateRef.Path)

	info, err := fs.Stat(TemplateFS, templatePath)
	if err != nil {
		return errors.Wrapf(err, "template not found: %s", templateRef.Path)
	}

	if info.IsDir() != templateRef.IsDirectory() {
		return errors.Newf("template reference type mismatch for %s: expected dir=%t, got dir=%t",
			templateRef.Path, templateRef.IsDirectory(), info.IsDir())
	}

	if templateRef.IsFile() {
		_, err := te.load(templatePath)
		return err
	}
	return nil
}
