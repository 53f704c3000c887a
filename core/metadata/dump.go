package metadata

import (
	"bytes"
	"math/big"

	"gopkg.in/yaml.v3"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/models"
)

// Dump is a decoded metadata dump.
//
// The YAML (or JSON) document looks like:
//
//	target: numpy
//	doc: "NumPy ..."
//	attributes:
//	  pi: {value: 3.141592653589793}
//	  array: {kind: builtin_function_or_method, flags: [callable], arglist: [object]}
//	present: [pi, array]
//
// Attribute order is kept as written. When present is omitted every
// attribute is taken to be live.
type Dump struct {
	Module  models.ModuleMetadata
	present map[string]bool
}

func (d *Dump) HasAttribute(name string) bool {
	if d.present == nil {
		return true
	}
	return d.present[name]
}

type rawDump struct {
	Target     string    `yaml:"target"`
	Doc        *string   `yaml:"doc"`
	Attributes yaml.Node `yaml:"attributes"`
	Present    *[]string `yaml:"present"`
}

type rawDescriptor struct {
	Kind    string    `yaml:"kind"`
	Doc     *string   `yaml:"doc"`
	Flags   yaml.Node `yaml:"flags"`
	Arglist []string  `yaml:"arglist"`
	Value   yaml.Node `yaml:"value"`
}

// Decode parses a dump. Entries with non-string names or non-mapping
// metadata are kept with StringName false or a nil Descriptor; the emitter
// skips them. Structural problems are ErrMetadata.
func Decode(data []byte) (*Dump, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Metadataf("empty metadata dump")
	}

	var raw rawDump
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapMetadata(err, "failed to parse metadata dump")
	}

	entries, err := decodeAttributes(&raw.Attributes)
	if err != nil {
		return nil, err
	}

	dump := &Dump{
		Module: models.ModuleMetadata{
			Target:  raw.Target,
			Doc:     raw.Doc,
			Entries: entries,
		},
	}
	if raw.Present != nil {
		dump.present = make(map[string]bool, len(*raw.Present))
		for _, name := range *raw.Present {
			dump.present[name] = true
		}
	}
	return dump, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func decodeAttributes(node *yaml.Node) ([]models.Entry, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Metadataf("attributes must be a mapping, got %s at line %d", node.ShortTag(), node.Line)
	}

	entries := make([]models.Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		value := resolveAlias(node.Content[i+1])

		entry := models.Entry{
			Name:       key.Value,
			StringName: key.Kind == yaml.ScalarNode && key.ShortTag() == "!!str",
		}
		if value.Kind == yaml.MappingNode {
			desc, err := decodeDescriptor(value)
			if err != nil {
				return nil, errors.Wrapf(err, "attribute %q", key.Value)
			}
			entry.Descriptor = desc
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeDescriptor(node *yaml.Node) (*models.AttributeDescriptor, error) {
	var raw rawDescriptor
	if err := node.Decode(&raw); err != nil {
		return nil, errors.WrapMetadata(err, "malformed descriptor at line %d", node.Line)
	}

	flags, err := decodeFlags(resolveAlias(&raw.Flags))
	if err != nil {
		return nil, err
	}

	value, err := decodeValue(resolveAlias(&raw.Value))
	if err != nil {
		return nil, err
	}

	return &models.AttributeDescriptor{
		Kind:    raw.Kind,
		Doc:     raw.Doc,
		Flags:   flags,
		Arglist: raw.Arglist,
		Value:   value,
	}, nil
}

// decodeFlags accepts a mapping of booleans, a list of names or a single name.
func decodeFlags(node *yaml.Node) (models.Flags, error) {
	if isNull(node) {
		return nil, nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		var flags map[string]bool
		if err := node.Decode(&flags); err != nil {
			return nil, errors.WrapMetadata(err, "malformed flags at line %d", node.Line)
		}
		return models.Flags(flags), nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return nil, errors.WrapMetadata(err, "malformed flags at line %d", node.Line)
		}
		return models.NewFlags(names...), nil
	case yaml.ScalarNode:
		return models.NewFlags(node.Value), nil
	default:
		return nil, errors.Metadataf("malformed flags at line %d", node.Line)
	}
}

// decodeValue keeps scalar literals only; container values are not inlined.
// Integers beyond 64 bits decode as *big.Int instead of a rounded float64.
func decodeValue(node *yaml.Node) (interface{}, error) {
	if isNull(node) || node.Kind != yaml.ScalarNode {
		return nil, nil
	}
	var value interface{}
	if err := node.Decode(&value); err != nil {
		return nil, errors.WrapMetadata(err, "malformed value at line %d", node.Line)
	}
	if _, isFloat := value.(float64); isFloat {
		// yaml.v3 resolves integers that overflow 64 bits to !!float.
		if n, ok := new(big.Int).SetString(node.Value, 0); ok {
			return n, nil
		}
	}
	return value, nil
}
