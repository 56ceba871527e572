package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// Template is a parsed line format.
type Template struct {
	tmpl *template.Template
}

// MustParse parses a line format and panics if it is invalid. Meant for
// package level formats.
func MustParse(name, format string) *Template {
	t, err := Parse(name, format)
	if err != nil {
		panic(err)
	}
	return t
}

func Parse(name, format string) (*Template, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Expand renders the template with data. Templates access fields via
// {{ .FieldName }}.
func (t *Template) Expand(data any) (string, error) {
	var buf bytes.Buffer
	err := t.tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
