package metadata

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/pyns/core/errors"
)

const numpyDump = `
target: numpy
doc: |-
  NumPy
  =====
attributes:
  zeta: {value: 1}
  pi:
    value: 3.14
  array:
    kind: builtin_function_or_method
    doc: Create an array.
    flags: [callable]
    arglist: [object, "dtype=None"]
  typecodes:
    kind: dict
  __all__:
    kind: list
  1: {kind: int}
  version: "1.26"
  ndarray:
    kind: type
    flags: {callable: true, class: true}
present: [zeta, pi, array, typecodes, __all__, ndarray]
`

func TestDecodeKeepsInsertionOrder(t *testing.T) {
	dump, err := Decode([]byte(numpyDump))
	require.NoError(t, err)

	var names []string
	for _, e := range dump.Module.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"zeta", "pi", "array", "typecodes", "__all__", "1", "version", "ndarray"}, names)
	assert.Equal(t, "numpy", dump.Module.Target)
	require.NotNil(t, dump.Module.Doc)
	assert.Equal(t, "NumPy\n=====", *dump.Module.Doc)
}

func TestDecodeEntries(t *testing.T) {
	dump, err := Decode([]byte(numpyDump))
	require.NoError(t, err)
	entries := dump.Module.Entries

	pi := entries[1]
	require.True(t, pi.Emittable())
	assert.Equal(t, 3.14, pi.Descriptor.Value)
	assert.Empty(t, pi.Descriptor.Kind)
	assert.Nil(t, pi.Descriptor.Doc)

	array := entries[2]
	require.True(t, array.Emittable())
	assert.True(t, array.Descriptor.Flags.Callable())
	assert.Equal(t, []string{"object", "dtype=None"}, array.Descriptor.Arglist)
	require.NotNil(t, array.Descriptor.Doc)
	assert.Equal(t, "Create an array.", *array.Descriptor.Doc)

	numeric := entries[5]
	assert.False(t, numeric.StringName, "integer keys are not string names")
	assert.NotNil(t, numeric.Descriptor)

	version := entries[6]
	assert.True(t, version.StringName)
	assert.Nil(t, version.Descriptor, "scalar metadata is not descriptor-valued")
	assert.False(t, version.Emittable())

	ndarray := entries[7]
	assert.Equal(t, []string{"callable", "class"}, ndarray.Descriptor.Flags.Names())
}

func TestDecodePresent(t *testing.T) {
	dump, err := Decode([]byte(numpyDump))
	require.NoError(t, err)

	assert.True(t, dump.HasAttribute("pi"))
	assert.False(t, dump.HasAttribute("version"))
	assert.False(t, dump.HasAttribute("missing"))

	open, err := Decode([]byte("attributes:\n  foo: {kind: list}\n"))
	require.NoError(t, err)
	assert.True(t, open.HasAttribute("foo"), "no present list means everything is live")

	none, err := Decode([]byte("attributes:\n  foo: {kind: list}\npresent: []\n"))
	require.NoError(t, err)
	assert.False(t, none.HasAttribute("foo"))
}

func TestDecodeJSON(t *testing.T) {
	dump, err := Decode([]byte(`{"target": "json", "attributes": {"loads": {"flags": {"callable": true}}, "dumps": {"flags": ["callable"]}}}`))
	require.NoError(t, err)
	require.Len(t, dump.Module.Entries, 2)
	assert.Equal(t, "loads", dump.Module.Entries[0].Name)
	assert.Equal(t, "dumps", dump.Module.Entries[1].Name)
	assert.Nil(t, dump.Module.Doc)
}

func TestDecodeValues(t *testing.T) {
	dump, err := Decode([]byte(`
attributes:
  s: {value: "text"}
  b: {value: true}
  i: {value: 42}
  big: {value: 123456789012345678901234567890}
  negbig: {value: -98765432109876543210}
  n: {value: null}
  l: {value: [1, 2]}
`))
	require.NoError(t, err)
	values := map[string]interface{}{}
	for _, e := range dump.Module.Entries {
		values[e.Name] = e.Descriptor.Value
	}
	assert.Equal(t, "text", values["s"])
	assert.Equal(t, true, values["b"])
	assert.Equal(t, 42, values["i"])
	require.IsType(t, &big.Int{}, values["big"])
	assert.Equal(t, "123456789012345678901234567890", values["big"].(*big.Int).String())
	require.IsType(t, &big.Int{}, values["negbig"])
	assert.Equal(t, "-98765432109876543210", values["negbig"].(*big.Int).String())
	assert.Nil(t, values["n"])
	assert.Nil(t, values["l"], "container values are not inlined")
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "   \n"},
		{"not a mapping", "- a\n- b\n"},
		{"attributes is a list", "attributes: [a, b]\n"},
		{"bad kind type", "attributes:\n  foo: {kind: [a]}\n"},
		{"bad arglist", "attributes:\n  foo: {arglist: {a: b}}\n"},
		{"bad flags", "attributes:\n  foo: {flags: {callable: [x]}}\n"},
		{"invalid yaml", "attributes: {foo: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMetadata), "got %v", err)
		})
	}
}

func TestDecodeNullAttributes(t *testing.T) {
	dump, err := Decode([]byte("target: empty\nattributes:\n"))
	require.NoError(t, err)
	assert.Empty(t, dump.Module.Entries)
}
