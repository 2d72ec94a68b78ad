package result

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFiles embed.FS

// requiredValues names the placeholders each result's comment template may
// reference. Renderer construction fails if a template reaches outside
// this set.
var requiredValues = map[Result][]string{
	ParseFailed:       {"exception"},
	ValidationFailed:  {"exception"},
	UnexpectedError:   {"exception"},
	ValidationSuccess: {"pull_request_url", "validate_info"},
}

// Renderer renders the comment template of a result with named values.
// Templates are embedded in the binary and validated when the Renderer is
// constructed, not when a run ends.
type Renderer struct {
	templates map[Result]*template.Template
}

// NewRenderer parses every result's template and probes it with the
// result's allowed placeholders, so a misspelled placeholder fails here
// instead of in the last step of a run
func NewRenderer() (*Renderer, error) {
	templates := map[Result]*template.Template{}

	for _, res := range Results {
		name := fmt.Sprintf("%s.md", res)

		raw, err := templateFiles.ReadFile(fmt.Sprintf("templates/%s", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %s",
				name, err.Error())
		}

		tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %s",
				name, err.Error())
		}

		probe := map[string]string{}
		for _, key := range requiredValues[res] {
			probe[key] = ""
		}

		if err := tmpl.Execute(io.Discard, probe); err != nil {
			return nil, fmt.Errorf("template %s references a placeholder "+
				"outside %v: %s", name, requiredValues[res], err.Error())
		}

		templates[res] = tmpl
	}

	return &Renderer{
		templates: templates,
	}, nil
}

// Render renders the comment for a result with the given named values
func (r *Renderer) Render(res Result, values map[string]string) (string, error) {
	tmpl, ok := r.templates[res]
	if !ok {
		return "", fmt.Errorf("no template for result: %s", res)
	}

	var out strings.Builder

	if err := tmpl.Execute(&out, values); err != nil {
		return "", fmt.Errorf("failed to render template for result %s: %s",
			res, err.Error())
	}

	return out.String(), nil
}
