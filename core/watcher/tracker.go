package watcher

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/metadata"
)

// fingerprint identifies the dump a target was last generated from.
type fingerprint struct {
	path    string
	modTime time.Time
	hash    string
}

// DumpTracker remembers, per target, the dump the file source reads and its
// content hash, and reports which targets actually changed. Only dumps
// directly in the source directory count, since that is all the source
// locates; when a target has several dumps the one the source prefers wins.
type DumpTracker struct {
	source *metadata.FileSource

	mu   sync.Mutex
	seen map[string]fingerprint
}

func NewDumpTracker(source *metadata.FileSource) *DumpTracker {
	return &DumpTracker{
		source: source,
		seen:   make(map[string]fingerprint),
	}
}

// TargetOf derives the target name from a dump path, e.g. "dumps/os.path.yaml"
// is "os.path".
func TargetOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isDump(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := filepath.Ext(name)
	for _, want := range metadata.DumpExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Scan fingerprints every dump in the source directory and returns each
// target once, sorted.
func (t *DumpTracker) Scan() ([]string, error) {
	entries, err := os.ReadDir(t.source.Dir)
	if err != nil {
		return nil, errors.WrapIO(err, "failed to read metadata directory %s", t.source.Dir)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	done := make(map[string]bool)
	var targets []string
	for _, entry := range entries {
		if entry.IsDir() || !isDump(entry.Name()) {
			continue
		}
		target := TargetOf(entry.Name())
		if done[target] {
			continue
		}
		done[target] = true

		if _, err := t.refresh(target); err != nil {
			logger.Warn("Failed to fingerprint dump of %s: %v", target, err)
			continue
		}
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets, nil
}

// Changed returns the targets among paths whose effective dump differs from
// the remembered fingerprint. Nested paths are ignored, and targets whose
// dumps are all gone are forgotten without being reported.
func (t *DumpTracker) Changed(paths []string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	dir := filepath.Clean(t.source.Dir)
	done := make(map[string]bool)
	var targets []string
	for _, path := range paths {
		if filepath.Dir(path) != dir || !isDump(filepath.Base(path)) {
			logger.Debug("Ignoring %s: not a dump the source reads", path)
			continue
		}
		target := TargetOf(path)
		if done[target] {
			continue
		}
		done[target] = true

		changed, err := t.refresh(target)
		if err != nil {
			delete(t.seen, target)
			logger.Debug("Dump of %s is gone: %v", target, err)
			continue
		}
		if !changed {
			logger.Debug("Skipping unchanged dump of %s", target)
			continue
		}
		targets = append(targets, target)
	}
	return targets
}

// refresh re-fingerprints the dump the source locates for target and reports
// whether it differs from the remembered one. Must be called with mu held.
func (t *DumpTracker) refresh(target string) (bool, error) {
	path, err := t.source.Locate(target)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, errors.WrapIO(err, "failed to stat %s", path)
	}

	prev, known := t.seen[target]
	if known && prev.path == path && prev.modTime.Equal(info.ModTime()) {
		return false, nil
	}

	hash, err := hashFile(path)
	if err != nil {
		return false, err
	}
	t.seen[target] = fingerprint{path: path, modTime: info.ModTime(), hash: hash}

	return !known || prev.path != path || prev.hash != hash, nil
}

func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.WrapIO(err, "failed to open %s", path)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", errors.WrapIO(err, "failed to hash %s", path)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
