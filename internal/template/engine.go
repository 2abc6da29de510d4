package template

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders text templates with the sprig function library.
type Engine struct {
	funcs template.FuncMap
}

// New creates a new template engine
func New() *Engine {
	return &Engine{
		funcs: sprig.TxtFuncMap(),
	}
}

// Render executes text against context. Referencing a key that is not in context is an error.
func (e *Engine) Render(name, text string, context map[string]interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(e.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, context); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return out.String(), nil
}

// ValidateContext ensures all required variables are present in the context
func (e *Engine) ValidateContext(required []string, context map[string]interface{}) error {
	var missingVars []string
	for _, varName := range required {
		if _, exists := context[varName]; !exists {
			missingVars = append(missingVars, varName)
		}
	}

	if len(missingVars) > 0 {
		sort.Strings(missingVars)
		return fmt.Errorf("missing required variables: %s", strings.Join(missingVars, ", "))
	}

	return nil
}
