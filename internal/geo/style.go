package geo

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/property"
)

// NormalizeColor returns c as a lowercase #rrggbb string. The leading '#'
// is optional and the three digit short form is accepted.
func NormalizeColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c != "" && c[0] != '#' {
		c = "#" + c
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return "", fmt.Errorf("color %q: %w", c, editerrors.ErrInvalidState)
	}
	return col.Hex(), nil
}

// DisplayName derives a label from a property name, for names that have no
// registered metadata: "line_cap" and "line-cap" both become "Line Cap".
func DisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	if len(words) == 0 {
		return name
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

// importedProperty builds a property for a value read from a foreign
// document. Registered names keep their metadata; color values are
// normalized and left as-is when they do not parse.
func importedProperty(name string, value any) *property.Property {
	if property.IsWellKnown(name) {
		md := property.Lookup(name)
		if s, ok := value.(string); ok && md.Type == property.TypeColor {
			if norm, err := NormalizeColor(s); err == nil {
				value = norm
			}
		}
		return property.New(name, value, md)
	}

	md := property.Metadata{Type: property.TypeString, DisplayName: DisplayName(name)}
	switch v := value.(type) {
	case float64:
		md.Type = property.TypeNumber
	case bool:
		md.Type = property.TypeBoolean
	case []float64:
		md.Type = property.TypeNumberArray
	case string:
	default:
		value = fmt.Sprint(v)
	}
	return property.New(name, value, md)
}
