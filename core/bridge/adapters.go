package bridge

import (
	"github.com/tristendillon/pyns/core/errors"
)

func newAttrCell[T any](root *Root, name string, adapt func(Object) (T, bool)) *Cell[T] {
	return NewCell(func() (T, error) {
		var zero T
		obj, err := root.Get()
		if err != nil {
			return zero, err
		}
		attr, err := obj.Attr(name)
		if err != nil {
			return zero, errors.Wrapf(err, "get attribute %s", name)
		}
		v, ok := adapt(attr)
		if !ok {
			return zero, errors.Wrapf(ErrWrongAdapter, "attribute %s is %T", name, attr)
		}
		return v, nil
	})
}

// Handle is an opaque foreign attribute.
type Handle struct {
	Name string
	cell *Cell[Object]
}

func NewHandle(root *Root, name string) *Handle {
	return &Handle{
		Name: name,
		cell: newAttrCell(root, name, func(o Object) (Object, bool) { return o, true }),
	}
}

func (h *Handle) Get() (Object, error) {
	return h.cell.Get()
}

// List is a foreign list or tuple attribute.
type List struct {
	Name string
	cell *Cell[Sequence]
}

func NewList(root *Root, name string) *List {
	return &List{
		Name: name,
		cell: newAttrCell(root, name, func(o Object) (Sequence, bool) {
			s, ok := o.(Sequence)
			return s, ok
		}),
	}
}

func (l *List) Get() (Sequence, error) {
	return l.cell.Get()
}

func (l *List) Len() (int, error) {
	s, err := l.Get()
	if err != nil {
		return 0, err
	}
	return s.Len()
}

func (l *List) Index(i int) (Object, error) {
	s, err := l.Get()
	if err != nil {
		return nil, err
	}
	return s.Index(i)
}

// Map is a foreign mapping attribute.
type Map struct {
	Name string
	cell *Cell[Dict]
}

func NewMap(root *Root, name string) *Map {
	return &Map{
		Name: name,
		cell: newAttrCell(root, name, func(o Object) (Dict, bool) {
			d, ok := o.(Dict)
			return d, ok
		}),
	}
}

func (m *Map) Get() (Dict, error) {
	return m.cell.Get()
}

func (m *Map) Lookup(key interface{}) (Object, bool, error) {
	d, err := m.Get()
	if err != nil {
		return nil, false, err
	}
	return d.Lookup(key)
}

func (m *Map) Keys() ([]Object, error) {
	d, err := m.Get()
	if err != nil {
		return nil, err
	}
	return d.Keys()
}

// Callable is a foreign callable attribute. Describe attaches the docstring
// and argument list reported by the metadata source.
type Callable struct {
	Name    string
	doc     string
	arglist []string
	cell    *Cell[Invocable]
}

func NewCallable(root *Root, name string) *Callable {
	return &Callable{
		Name: name,
		cell: newAttrCell(root, name, func(o Object) (Invocable, bool) {
			f, ok := o.(Invocable)
			return f, ok
		}),
	}
}

// Describe records metadata and returns c, so generated code can attach it
// in a package-level declaration.
func (c *Callable) Describe(doc string, arglist []string) *Callable {
	c.doc = doc
	c.arglist = arglist
	return c
}

func (c *Callable) Doc() string {
	return c.doc
}

// Arglist returns the parameter specs, or nil when the source had none.
func (c *Callable) Arglist() []string {
	return c.arglist
}

func (c *Callable) Get() (Invocable, error) {
	return c.cell.Get()
}

// Call invokes the attribute with positional arguments.
func (c *Callable) Call(args ...interface{}) (Object, error) {
	return c.CallKw(args, nil)
}

func (c *Callable) CallKw(args []interface{}, kwargs map[string]interface{}) (Object, error) {
	f, err := c.Get()
	if err != nil {
		return nil, err
	}
	return f.Call(args, kwargs)
}
