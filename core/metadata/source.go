// Package metadata reads the descriptor tables that describe a live Python
// object. The introspection itself happens elsewhere; a Source only reaches
// its output, either as dump files on disk or by running an introspection
// command.
package metadata

import (
	"context"
	"sync"

	"github.com/tristendillon/pyns/core/models"
)

// Source opens metadata sessions for targets.
type Source interface {
	// Open acquires the foreign execution context and loads the target's
	// metadata. The context is held until the session is closed.
	Open(ctx context.Context, target string) (Session, error)
}

// Session is a scoped view of one target's metadata.
type Session interface {
	// Module returns the target's docstring and descriptor table.
	Module() (*models.ModuleMetadata, error)
	// HasAttribute reports whether name is present on the live object. An
	// error marked ErrAttributeMissing counts as absent.
	HasAttribute(name string) (bool, error)
	// Close releases the execution context. It is safe to call twice.
	Close() error
}

// ExecutionContext admits one active session at a time, mirroring the
// single-active-execution-context discipline of the foreign runtime.
type ExecutionContext struct {
	slot chan struct{}
}

func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{slot: make(chan struct{}, 1)}
}

var defaultExecutionContext = NewExecutionContext()

// DefaultExecutionContext is shared by sources that are not given their own.
func DefaultExecutionContext() *ExecutionContext {
	return defaultExecutionContext
}

// Acquire blocks until the context is free or ctx is done. The returned
// release func is idempotent.
func (ec *ExecutionContext) Acquire(ctx context.Context) (func(), error) {
	select {
	case ec.slot <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-ec.slot })
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// dumpSession serves a decoded dump while holding the execution context.
type dumpSession struct {
	dump    *Dump
	release func()
}

func (s *dumpSession) Module() (*models.ModuleMetadata, error) {
	module := s.dump.Module
	return &module, nil
}

func (s *dumpSession) HasAttribute(name string) (bool, error) {
	return s.dump.HasAttribute(name), nil
}

func (s *dumpSession) Close() error {
	s.release()
	return nil
}
