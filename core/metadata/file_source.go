package metadata

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
)

// DumpExtensions are tried in order when locating a target's dump.
var DumpExtensions = []string{".yaml", ".yml", ".json"}

// FileSource reads <Dir>/<target>.yaml (or .yml, .json) dumps.
type FileSource struct {
	Dir  string
	exec *ExecutionContext
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir, exec: DefaultExecutionContext()}
}

func (s *FileSource) WithExecutionContext(ec *ExecutionContext) *FileSource {
	s.exec = ec
	return s
}

// Locate returns the dump file for target.
func (s *FileSource) Locate(target string) (string, error) {
	for _, ext := range DumpExtensions {
		p := filepath.Join(s.Dir, target+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", errors.WithHintf(
		errors.Metadataf("no metadata dump for %q in %s", target, s.Dir),
		"expected one of %s/%s{.yaml,.yml,.json}", s.Dir, target,
	)
}

func (s *FileSource) Open(ctx context.Context, target string) (Session, error) {
	release, err := s.exec.Acquire(ctx)
	if err != nil {
		return nil, errors.WrapMetadata(err, "failed to acquire execution context for %s", target)
	}

	dump, err := s.load(target)
	if err != nil {
		release()
		return nil, err
	}
	return &dumpSession{dump: dump, release: release}, nil
}

func (s *FileSource) load(target string) (*Dump, error) {
	path, err := s.Locate(target)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapMetadata(err, "failed to read metadata dump %s", path)
	}

	dump, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	if dump.Module.Target != "" && dump.Module.Target != target {
		logger.Warn("Metadata dump %s describes %q, using it for %q", path, dump.Module.Target, target)
	}
	dump.Module.Target = target
	logger.Debug("Loaded %d metadata entries for %s from %s", len(dump.Module.Entries), target, path)
	return dump, nil
}
