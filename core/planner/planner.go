// Package planner derives where a generated namespace lives: its module
// symbol, Go package name and output path.
package planner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/models"
	"github.com/tristendillon/pyns/core/shared"
)

// SourceExt is the extension of generated files.
const SourceExt = ".go"

// Resolve computes the plan for target without touching the filesystem.
//
// The module symbol is opts.NsSymbol, or opts.NsPrefix + "." + target. Path
// segments are the symbol's dot separated parts with dashes turned into
// underscores; the symbol itself keeps its dashes.
func Resolve(target string, opts models.Options) (models.GenerationPlan, error) {
	opts = opts.WithDefaults()

	if strings.TrimSpace(target) == "" {
		return models.GenerationPlan{}, errors.Configurationf("empty target specifier")
	}

	symbol := opts.NsSymbol
	if symbol == "" {
		symbol = opts.NsPrefix + "." + target
	}

	parts := strings.Split(symbol, ".")
	segments := make([]string, len(parts))
	for i, part := range parts {
		if part == "" {
			return models.GenerationPlan{}, errors.Configurationf("module symbol %q has an empty segment", symbol)
		}
		segments[i] = shared.ToSnake(part)
	}

	targetPath := opts.OutputFname
	if targetPath == "" {
		targetPath = filepath.Join(append([]string{opts.OutputDir}, segments...)...) + SourceExt
	}

	return models.GenerationPlan{
		Target:       target,
		ModuleSymbol: symbol,
		PackageName:  segments[len(segments)-1],
		TargetPath:   targetPath,
	}, nil
}

// Prepare creates the plan's missing parent directories.
func Prepare(plan models.GenerationPlan) error {
	dir := filepath.Dir(plan.TargetPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.WrapIO(err, "failed to create output directory %s", dir)
	}
	if info, err := os.Stat(plan.TargetPath); err == nil && info.IsDir() {
		return errors.Configurationf("output path %s is a directory", plan.TargetPath)
	}
	logger.Debug("Prepared output directory %s", dir)
	return nil
}

// Plan resolves and prepares in one step.
func Plan(target string, opts models.Options) (models.GenerationPlan, error) {
	plan, err := Resolve(target, opts)
	if err != nil {
		return models.GenerationPlan{}, err
	}
	if err := Prepare(plan); err != nil {
		return models.GenerationPlan{}, err
	}
	return plan, nil
}

// CheckLayout rejects plans that cannot build together: a Go directory holds
// exactly one package, and two plans must not share a file.
func CheckLayout(plans []models.GenerationPlan) error {
	byDir := make(map[string]models.GenerationPlan)
	byPath := make(map[string]models.GenerationPlan)

	for _, plan := range plans {
		if other, ok := byPath[plan.TargetPath]; ok {
			return errors.Configurationf("targets %q and %q both write %s", other.Target, plan.Target, plan.TargetPath)
		}
		byPath[plan.TargetPath] = plan

		dir := filepath.Dir(plan.TargetPath)
		if other, ok := byDir[dir]; ok && other.PackageName != plan.PackageName {
			return errors.WithHintf(
				errors.Configurationf("targets %q and %q put packages %s and %s in the same directory %s",
					other.Target, plan.Target, other.PackageName, plan.PackageName, dir),
				"give one of them its own ns_symbol, e.g. %s.%s", plan.ModuleSymbol, plan.PackageName,
			)
		}
		byDir[dir] = plan
	}
	return nil
}
