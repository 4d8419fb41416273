package xmlmap

import (
	"strconv"
	"time"

	"github.com/agentstation/utc"

	"github.com/capitolworks/legisync/pkg/errors"
)

// Field maps one element attribute onto one entity field. The Assign
// function is the typed coercion, bound when the schema is constructed
// rather than dispatched per record.
type Field[T any] struct {
	Attr     string
	Required bool
	Assign   func(dst *T, value string) error
}

// Schema is an ordered set of attribute-to-field mappings for one
// entity kind.
type Schema[T any] struct {
	Element string
	Fields  []Field[T]
}

// NewSchema constructs a schema for elements of the given name.
func NewSchema[T any](element string, fields ...Field[T]) *Schema[T] {
	return &Schema[T]{Element: element, Fields: fields}
}

// Apply populates dst from the node's attributes. It fails with a
// *errors.MissingAttributeError naming the first missing required
// attribute; optional absent attributes are skipped.
func (s *Schema[T]) Apply(n *Node, dst *T) error {
	for _, field := range s.Fields {
		value, ok := n.Attrs[field.Attr]
		if !ok || value == "" {
			if field.Required {
				return errors.NewMissingAttributeError(s.Element, field.Attr)
			}
			continue
		}
		if err := field.Assign(dst, value); err != nil {
			return &errors.ValidationError{Field: field.Attr, Value: value, Message: err.Error()}
		}
	}
	return nil
}

// String builds a field whose attribute is assigned as-is.
func String[T any](attr string, required bool, set func(dst *T, value string)) Field[T] {
	return Field[T]{
		Attr:     attr,
		Required: required,
		Assign: func(dst *T, value string) error {
			set(dst, value)
			return nil
		},
	}
}

// Int builds a field whose attribute is coerced to an integer.
func Int[T any](attr string, required bool, set func(dst *T, value int)) Field[T] {
	return Field[T]{
		Attr:     attr,
		Required: required,
		Assign: func(dst *T, value string) error {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			set(dst, parsed)
			return nil
		},
	}
}

// Func builds a field with a custom coercion that may fail.
func Func[T any](attr string, required bool, assign func(dst *T, value string) error) Field[T] {
	return Field[T]{Attr: attr, Required: required, Assign: assign}
}

// datetime layouts accepted by source documents: full timestamps with
// zone offset, zone-less timestamps, and bare dates.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDateTime parses a source-document datetime attribute.
func ParseDateTime(value string) (utc.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return utc.Time{Time: t.UTC()}, nil
		}
	}
	return utc.Time{}, errors.NewValidationError("datetime", value, "unrecognized datetime format")
}
