package generator

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
	"github.com/tristendillon/pyns/core/models"
	"github.com/tristendillon/pyns/core/shared"
	"github.com/tristendillon/pyns/core/template_engine"
)

// Dispatcher renders one declaration per attribute, choosing the emission
// form from the attribute's kind.
type Dispatcher struct {
	engine *template_engine.TemplateEngine
}

func NewDispatcher(engine *template_engine.TemplateEngine) *Dispatcher {
	return &Dispatcher{engine: engine}
}

type declData struct {
	Name        string
	HostID      string
	Literal     string
	Constructor string
	Doc         *string
	Arglist     []string
}

// ResolveKind maps a descriptor onto exactly one kind. Container kinds win,
// then callables, then literal scalars; anything else, unknown kind strings
// included, is generic.
func ResolveKind(desc *models.AttributeDescriptor) models.Kind {
	parsed, known := models.ParseKind(desc.Kind)

	switch {
	case known && (parsed == models.KindList || parsed == models.KindTuple || parsed == models.KindMapping):
		return parsed
	case desc.Flags.Callable(), known && parsed == models.KindCallable:
		return models.KindCallable
	}

	if _, ok := ScalarLiteral(desc.Value); ok {
		return models.KindScalar
	}

	if !known && desc.Kind != "" {
		logger.Debug("Unknown attribute kind %q, emitting a generic handle", desc.Kind)
	}
	return models.KindGeneric
}

// ScalarLiteral renders value as a Go constant expression. Only strings,
// booleans, integers of any size and finite floats other than negative zero
// qualify.
func ScalarLiteral(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return shared.Quote(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case *big.Int:
		if v == nil {
			return "", false
		}
		return v.String(), true
	case float64:
		return floatLiteral(v, 64)
	case float32:
		return floatLiteral(float64(v), 32)
	default:
		return "", false
	}
}

func floatLiteral(f float64, bitSize int) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 && math.Signbit(f) {
		return "", false
	}
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, true
}

// Dispatch renders the declaration of one attribute under hostID.
func (d *Dispatcher) Dispatch(hostID, name string, desc *models.AttributeDescriptor) (models.Declaration, error) {
	kind := ResolveKind(desc)
	data := declData{Name: name, HostID: hostID}
	ref := template_engine.TEMPLATES.NAMESPACE.DEFERRED_GO

	switch kind {
	case models.KindScalar:
		data.Literal, _ = ScalarLiteral(desc.Value)
		ref = template_engine.TEMPLATES.NAMESPACE.SCALAR_GO
	case models.KindList, models.KindTuple:
		data.Constructor = "NewList"
	case models.KindMapping:
		data.Constructor = "NewMap"
	case models.KindCallable:
		data.Doc = desc.Doc
		data.Arglist = desc.Arglist
		ref = template_engine.TEMPLATES.NAMESPACE.CALLABLE_GO
	default:
		data.Constructor = "NewHandle"
	}

	text, err := d.engine.RenderString(ref, data)
	if err != nil {
		return models.Declaration{}, errors.Wrapf(err, "render %s declaration for %q", kind, name)
	}

	return models.Declaration{
		Name:   name,
		HostID: hostID,
		Kind:   kind,
		Text:   strings.TrimRight(text, "\n"),
	}, nil
}
