package generator

import (
	"bytes"
	"context"
	"os"

	"golang.org/x/tools/imports"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/metadata"
	"github.com/tristendillon/pyns/core/models"
	"github.com/tristendillon/pyns/core/planner"
	"github.com/tristendillon/pyns/core/shared"
	"github.com/tristendillon/pyns/core/template_engine"
)

// BridgeImportPath is the package generated files import their runtime
// adapters from.
const BridgeImportPath = "github.com/tristendillon/pyns/core/bridge"

// Result describes one generation run.
type Result struct {
	Plan         models.GenerationPlan
	Declarations []models.Declaration
	// Skipped holds the attributes listed in the metadata table that were
	// not present on the live object.
	Skipped []string
	// Collisions holds the attributes whose host identifier was already
	// declared. They are still emitted.
	Collisions []string
}

// reservedIdentifiers are declared by every generated file.
var reservedIdentifiers = map[string]string{
	"Doc":    "the module docstring",
	"root":   "the module handle",
	"bridge": "the bridge import",
}

type NamespaceGenerator struct {
	source     metadata.Source
	engine     *template_engine.TemplateEngine
	dispatcher *Dispatcher
}

func NewNamespaceGenerator(source metadata.Source) *NamespaceGenerator {
	engine := template_engine.NewTemplateEngine()
	return &NamespaceGenerator{
		source:     source,
		engine:     engine,
		dispatcher: NewDispatcher(engine),
	}
}

type fileData struct {
	Plan         models.GenerationPlan
	Shadow       []string
	BridgeImport string
	Declarations []models.Declaration
}

// Generate writes the namespace file for target. The output file is
// truncated and rewritten on every run; the metadata session is released
// only after the file is closed.
func (g *NamespaceGenerator) Generate(ctx context.Context, target string, opts models.Options) (res *Result, err error) {
	plan, err := planner.Plan(target, opts)
	if err != nil {
		return nil, err
	}

	sess, err := g.source.Open(ctx, target)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("Failed to release metadata session for %s: %v", target, cerr)
		}
	}()

	module, err := sess.Module()
	if err != nil {
		return nil, errors.WrapMetadata(err, "failed to read metadata for %s", target)
	}
	plan = plan.WithDoc(module.Doc)

	out, err := os.Create(plan.TargetPath)
	if err != nil {
		return nil, errors.WrapIO(err, "failed to create %s", plan.TargetPath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			res, err = nil, errors.WrapIO(cerr, "failed to close %s", plan.TargetPath)
		}
	}()

	declared, err := g.declarations(sess, module, opts)
	if err != nil {
		return nil, err
	}
	declared.Plan = plan

	src, err := g.render(plan, declared.Declarations, opts)
	if err != nil {
		return nil, err
	}

	if _, err := out.Write(src); err != nil {
		return nil, errors.WrapIO(err, "failed to write %s", plan.TargetPath)
	}

	logger.Info("Generated %s for %s with %d declarations", plan.TargetPath, target, len(declared.Declarations))
	if len(declared.Skipped) > 0 {
		logger.Debug("Skipped %d absent attributes of %s: %v", len(declared.Skipped), target, declared.Skipped)
	}

	return declared, nil
}

// Inspect resolves the plan and dispatches every attribute without touching
// the filesystem.
func (g *NamespaceGenerator) Inspect(ctx context.Context, target string, opts models.Options) (*Result, error) {
	plan, err := planner.Resolve(target, opts)
	if err != nil {
		return nil, err
	}

	sess, err := g.source.Open(ctx, target)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	module, err := sess.Module()
	if err != nil {
		return nil, errors.WrapMetadata(err, "failed to read metadata for %s", target)
	}

	declared, err := g.declarations(sess, module, opts)
	if err != nil {
		return nil, err
	}
	declared.Plan = plan.WithDoc(module.Doc)

	return declared, nil
}

// Render produces the formatted source for target without writing it.
func (g *NamespaceGenerator) Render(ctx context.Context, target string, opts models.Options) ([]byte, *Result, error) {
	res, err := g.Inspect(ctx, target, opts)
	if err != nil {
		return nil, nil, err
	}
	src, err := g.render(res.Plan, res.Declarations, opts)
	if err != nil {
		return nil, nil, err
	}
	return src, res, nil
}

// declarations dispatches the emittable entries of module. The returned
// Result has no plan.
func (g *NamespaceGenerator) declarations(sess metadata.Session, module *models.ModuleMetadata, opts models.Options) (*Result, error) {
	out := &Result{}
	owners := make(map[string]string, len(reservedIdentifiers)+len(module.Entries))
	for id, owner := range reservedIdentifiers {
		owners[id] = owner
	}

	for _, entry := range module.Entries {
		if !entry.Emittable() {
			logger.Debug("Ignoring metadata entry %q of %s", entry.Name, module.Target)
			continue
		}

		present, err := sess.HasAttribute(entry.Name)
		if errors.IsFatal(err) {
			return nil, errors.WrapMetadata(err, "failed to look up %s.%s", module.Target, entry.Name)
		}
		if err != nil || !present {
			if err == nil {
				err = errors.AttributeMissingf("%s has no attribute %q", module.Target, entry.Name)
			}
			logger.Warn("Skipping: %v", err)
			out.Skipped = append(out.Skipped, entry.Name)
			continue
		}

		hostID := shared.HostID(entry.Name, opts.SymbolNameRemaps, opts.PreserveCase)
		if owner, taken := owners[hostID]; taken {
			logger.Warn("%s.%s redeclares %s, already declared for %s; the package will not compile", module.Target, entry.Name, hostID, owner)
			logger.Info("hint: remap it, e.g. --remap %s=%sAttr", entry.Name, hostID)
			out.Collisions = append(out.Collisions, entry.Name)
		} else {
			owners[hostID] = "attribute " + shared.Quote(entry.Name)
		}

		decl, err := g.dispatcher.Dispatch(hostID, entry.Name, entry.Descriptor)
		if err != nil {
			return nil, err
		}
		logger.Debug("%s.%s -> %s (%s)", module.Target, entry.Name, hostID, decl.Kind)
		out.Declarations = append(out.Declarations, decl)
	}

	return out, nil
}

func exclusions(opts models.Options) []string {
	if opts.Exclude == nil {
		return shared.DefaultExclusions()
	}
	return opts.Exclude
}

// render executes the file template and gofmts the result. Identifiers are
// not validated, so source that fails to parse is returned unformatted.
func (g *NamespaceGenerator) render(plan models.GenerationPlan, decls []models.Declaration, opts models.Options) ([]byte, error) {
	data := fileData{
		Plan:         plan,
		Shadow:       exclusions(opts),
		BridgeImport: BridgeImportPath,
		Declarations: decls,
	}

	var buf bytes.Buffer
	if err := g.engine.Render(template_engine.TEMPLATES.NAMESPACE.FILE_GO, &buf, data); err != nil {
		return nil, errors.Wrapf(err, "render namespace for %s", plan.Target)
	}

	formatted, err := imports.Process(plan.TargetPath, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		logger.Warn("Generated source for %s does not parse, writing it unformatted: %v", plan.Target, err)
		return buf.Bytes(), nil
	}
	return formatted, nil
}
