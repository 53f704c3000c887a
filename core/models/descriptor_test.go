package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagsNames(t *testing.T) {
	f := Flags{"class": true, "callable": true, "abstract": false}
	assert.True(t, f.Callable())
	assert.Equal(t, []string{"callable", "class"}, f.Names())

	var none Flags
	assert.False(t, none.Callable())
}

func TestEntryEmittable(t *testing.T) {
	desc := &AttributeDescriptor{}
	assert.True(t, Entry{Name: "pi", StringName: true, Descriptor: desc}.Emittable())
	assert.False(t, Entry{Name: "1", Descriptor: desc}.Emittable())
	assert.False(t, Entry{Name: "raw", StringName: true}.Emittable())
}
