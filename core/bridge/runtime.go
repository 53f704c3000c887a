// Package bridge is the runtime side of generated namespaces. Generated
// files declare package-level adapters that resolve Python attributes
// through the Runtime registered with SetRuntime, on first use.
package bridge

import (
	"sync"

	"github.com/tristendillon/pyns/core/errors"
)

// Object is a handle to a foreign object.
type Object interface {
	Attr(name string) (Object, error)
}

// Sequence is a foreign list or tuple.
type Sequence interface {
	Object
	Len() (int, error)
	Index(i int) (Object, error)
}

// Dict is a foreign mapping.
type Dict interface {
	Object
	Lookup(key interface{}) (Object, bool, error)
	Keys() ([]Object, error)
}

// Invocable is a foreign callable.
type Invocable interface {
	Object
	Call(args []interface{}, kwargs map[string]interface{}) (Object, error)
}

// Runtime imports foreign modules. Implementations own object lifetimes and
// the foreign execution context.
type Runtime interface {
	Import(module string) (Object, error)
}

var (
	ErrNoRuntime    = errors.New("no bridge runtime registered")
	ErrWrongAdapter = errors.New("foreign object does not support the adapter")
)

var (
	runtimeMu sync.RWMutex
	current   Runtime
)

// SetRuntime registers the runtime used by every root cell that has not
// been initialized yet. Cells that already resolved keep their value.
func SetRuntime(rt Runtime) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	current = rt
}

func CurrentRuntime() (Runtime, error) {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	if current == nil {
		return nil, ErrNoRuntime
	}
	return current, nil
}

// Root is the shared handle to a generated file's foreign module.
type Root = Cell[Object]

// NewRoot returns the lazily imported module named by the original target
// specifier.
func NewRoot(module string) *Root {
	return NewCell(func() (Object, error) {
		rt, err := CurrentRuntime()
		if err != nil {
			return nil, errors.Wrapf(err, "import %s", module)
		}
		obj, err := rt.Import(module)
		if err != nil {
			return nil, errors.Wrapf(err, "import %s", module)
		}
		return obj, nil
	})
}
