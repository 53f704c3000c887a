package models

type Kind int

const (
	KindGeneric Kind = iota
	KindScalar
	KindList
	KindTuple
	KindMapping
	KindCallable
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindMapping:
		return "mapping"
	case KindCallable:
		return "callable"
	default:
		return "generic"
	}
}

// kindNames maps the kind strings metadata sources emit onto kinds. Python
// type names are accepted alongside the canonical names.
var kindNames = map[string]Kind{
	"scalar":                     KindScalar,
	"str":                        KindScalar,
	"int":                        KindScalar,
	"float":                      KindScalar,
	"bool":                       KindScalar,
	"list":                       KindList,
	"tuple":                      KindTuple,
	"dict":                       KindMapping,
	"mapping":                    KindMapping,
	"callable":                   KindCallable,
	"function":                   KindCallable,
	"builtin_function_or_method": KindCallable,
	"method":                     KindCallable,
	"generic":                    KindGeneric,
}

// ParseKind maps a raw kind string onto a Kind. The boolean is false for
// unknown or empty strings, which parse as KindGeneric.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindNames[s]
	if !ok {
		return KindGeneric, false
	}
	return k, true
}
