package bridge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/pyns/core/errors"
)

type fakeObject struct {
	attrs map[string]Object
	fetch *int
}

func (o *fakeObject) Attr(name string) (Object, error) {
	if o.fetch != nil {
		*o.fetch++
	}
	a, ok := o.attrs[name]
	if !ok {
		return nil, fmt.Errorf("AttributeError: %s", name)
	}
	return a, nil
}

type fakeList struct {
	fakeObject
	items []Object
}

func (l *fakeList) Len() (int, error) { return len(l.items), nil }

func (l *fakeList) Index(i int) (Object, error) { return l.items[i], nil }

type fakeDict struct {
	fakeObject
	entries map[string]Object
}

func (d *fakeDict) Lookup(key interface{}) (Object, bool, error) {
	v, ok := d.entries[fmt.Sprint(key)]
	return v, ok, nil
}

func (d *fakeDict) Keys() ([]Object, error) { return nil, nil }

type fakeFunc struct {
	fakeObject
	calls [][]interface{}
}

func (f *fakeFunc) Call(args []interface{}, kwargs map[string]interface{}) (Object, error) {
	f.calls = append(f.calls, args)
	return &fakeObject{}, nil
}

type fakeRuntime struct {
	modules map[string]Object
	imports int
}

func (r *fakeRuntime) Import(module string) (Object, error) {
	r.imports++
	m, ok := r.modules[module]
	if !ok {
		return nil, fmt.Errorf("ModuleNotFoundError: %s", module)
	}
	return m, nil
}

func withRuntime(t *testing.T, rt Runtime) {
	t.Helper()
	SetRuntime(rt)
	t.Cleanup(func() { SetRuntime(nil) })
}

func TestCellFirstCallerWins(t *testing.T) {
	calls := 0
	cell := NewCell(func() (int, error) {
		calls++
		return calls * 10, nil
	})

	for i := 0; i < 3; i++ {
		v, err := cell.Get()
		require.NoError(t, err)
		assert.Equal(t, 10, v)
	}
	assert.Equal(t, 1, calls)
}

func TestCellMemoizesErrors(t *testing.T) {
	calls := 0
	cell := NewCell(func() (string, error) {
		calls++
		return "", errors.New("boom")
	})

	_, first := cell.Get()
	require.Error(t, first)
	_, second := cell.Get()
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRootWithoutRuntime(t *testing.T) {
	SetRuntime(nil)
	root := NewRoot("numpy")

	_, err := root.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRuntime))
}

func TestAdaptersFetchOnceFromSharedRoot(t *testing.T) {
	fetches := 0
	fn := &fakeFunc{}
	module := &fakeObject{fetch: &fetches, attrs: map[string]Object{
		"array":     fn,
		"__all__":   &fakeList{items: []Object{&fakeObject{}, &fakeObject{}}},
		"typecodes": &fakeDict{entries: map[string]Object{"All": &fakeObject{}}},
		"ndarray":   &fakeObject{},
	}}
	rt := &fakeRuntime{modules: map[string]Object{"numpy": module}}
	withRuntime(t, rt)

	root := NewRoot("numpy")
	array := NewCallable(root, "array").Describe("Create an array.", []string{"object", "dtype=None"})
	all := NewList(root, "__all__")
	typecodes := NewMap(root, "typecodes")
	ndarray := NewHandle(root, "ndarray")

	assert.Equal(t, 0, rt.imports, "nothing happens before first use")

	_, err := array.Call(1, 2)
	require.NoError(t, err)
	_, err = array.Call(3)
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{1, 2}, {3}}, fn.calls)
	assert.Equal(t, "Create an array.", array.Doc())
	assert.Equal(t, []string{"object", "dtype=None"}, array.Arglist())

	n, err := all.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = all.Index(1)
	require.NoError(t, err)

	_, found, err := typecodes.Lookup("All")
	require.NoError(t, err)
	assert.True(t, found)

	h, err := ndarray.Get()
	require.NoError(t, err)
	assert.NotNil(t, h)

	assert.Equal(t, 1, rt.imports, "the root is imported once")
	assert.Equal(t, 4, fetches, "each attribute is fetched once")
}

func TestAdapterErrors(t *testing.T) {
	module := &fakeObject{attrs: map[string]Object{"pi": &fakeObject{}}}
	withRuntime(t, &fakeRuntime{modules: map[string]Object{"math": module}})
	root := NewRoot("math")

	_, err := NewList(root, "pi").Len()
	assert.True(t, errors.Is(err, ErrWrongAdapter))

	_, err = NewCallable(root, "pi").Call()
	assert.True(t, errors.Is(err, ErrWrongAdapter))

	_, err = NewMap(root, "pi").Keys()
	assert.True(t, errors.Is(err, ErrWrongAdapter))

	_, err = NewHandle(root, "gone").Get()
	assert.ErrorContains(t, err, "AttributeError: gone")

	_, err = NewHandle(NewRoot("missing"), "x").Get()
	assert.ErrorContains(t, err, "ModuleNotFoundError")
}

func TestCallableWithoutDescribe(t *testing.T) {
	c := NewCallable(NewRoot("math"), "sqrt")
	assert.Empty(t, c.Doc())
	assert.Nil(t, c.Arglist())
}
