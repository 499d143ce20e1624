// Package schema describes the shape of the catalog: the GraphQL-style text
// served at /schema, and the JSON Schema used to validate operation bodies.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/grovetools/catalogd/pkg/models"
)

var rendered = sync.OnceValue(render)

// Render returns the schema description of the catalog. The text is derived
// from the Cat type definition only and never depends on catalog contents.
func Render() string {
	return rendered()
}

func render() string {
	var b strings.Builder

	b.WriteString("schema {\n  query: Queries\n  mutation: Mutations\n}\n\n")

	b.WriteString("enum Colour {\n")
	for _, c := range models.Colours() {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	b.WriteString("}\n\n")

	fields := catFields()
	writeObject(&b, "type", "Cat", fields)
	writeObject(&b, "input", "CatInput", fields)

	fmt.Fprintf(&b, "type Queries {\n  %s: [Cat!]!\n}\n\n", models.OperationListCats)
	fmt.Fprintf(&b, "type Mutations {\n  %s(cat: CatInput!): Unit!\n}\n\n", models.OperationAddCat)
	b.WriteString("scalar Unit\n")

	return b.String()
}

type field struct {
	name string
	typ  string
}

func writeObject(b *strings.Builder, kind, name string, fields []field) {
	fmt.Fprintf(b, "%s %s {\n", kind, name)
	for _, f := range fields {
		fmt.Fprintf(b, "  %s: %s\n", f.name, f.typ)
	}
	b.WriteString("}\n\n")
}

// catFields lists the Cat fields by their wire names, in declaration order.
func catFields() []field {
	t := reflect.TypeOf(models.Cat{})
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, field{name: name, typ: graphQLType(sf.Type)})
	}
	return fields
}

// graphQLType maps a Go field type to its GraphQL spelling. Pointers are the
// only nullable form.
func graphQLType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return strings.TrimSuffix(graphQLType(t.Elem()), "!")
	case reflect.Slice:
		return "[" + graphQLType(t.Elem()) + "]!"
	case reflect.String:
		if t.PkgPath() != "" {
			return t.Name() + "!"
		}
		return "String!"
	case reflect.Bool:
		return "Boolean!"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "Int!"
	case reflect.Float32, reflect.Float64:
		return "Float!"
	default:
		return t.Name() + "!"
	}
}
