// Package prompt renders extraction prompts from a template, a versioned
// schema literal, and worked example pairs. Rendering is pure substitution;
// all control flow stays out of the templates.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"
)

// Render substitutes named placeholders in tmpl from values. A placeholder
// with no matching key fails immediately rather than leaking an unfilled
// marker into the model request.
func Render(tmpl string, values map[string]string) (string, error) {
	t, err := template.New("prompt").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse prompt template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// ProjectValues binds the processed document text into the project template's
// placeholder set.
func ProjectValues(document string) map[string]string {
	return map[string]string{
		"document":        document,
		"response_format": ProjectResponseFormat,
		"example_input":   ExampleProjectDocument,
		"example_output":  ExampleProjectOutput,
	}
}

// CodelabValues binds the processed document text into the codelab template's
// placeholder set.
func CodelabValues(document string) map[string]string {
	return map[string]string{
		"document":        document,
		"response_format": CodelabResponseFormat,
		"example_input":   ExampleCodelabDocument,
		"example_output":  ExampleCodelabOutput,
	}
}
