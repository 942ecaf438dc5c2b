package pages

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/druskus20/bageri/internal/config"
)

// SPABody is the fixed application shell emitted for SPA pages.
const SPABody = `<body><div id="app"></div></body>`

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    {{- if .Favicon}}
    <link rel="icon" href="{{.Favicon}}">
    {{- end}}
    {{- if .Author}}
    <meta name="author" content="{{.Author}}">
    {{- end}}
    {{- if .Description}}
    <meta name="description" content="{{.Description}}">
    {{- end}}
    {{- range .Scripts}}
    <script type="module" src="{{.}}"></script>
    {{- end}}
    {{- range .Styles}}
    <link rel="stylesheet" href="{{.}}">
    {{- end}}
    <script>
      // Inject environment variables
      window.ENV = {{.Env}};
    </script>
  </head>
  {{.Body}}
</html>
`

// Renderer produces complete HTML documents from effective page attributes.
// The zero value is not usable; construct with NewRenderer.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the document template once for reuse across pages.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("document").Parse(documentTemplate)),
	}
}

type documentData struct {
	Title       string
	Favicon     string
	Author      string
	Description string
	Scripts     []string
	Styles      []string
	Env         template.JS
	Body        template.HTML
}

// RenderSPA renders a single-page-app shell for the given effective
// attributes and environment.
func (r *Renderer) RenderSPA(attrs config.Attributes, env map[string]string) (string, error) {
	return r.render(attrs, env, SPABody)
}

// RenderStatic renders a full document around an externally supplied body,
// normally the output of ExtractBody.
func (r *Renderer) RenderStatic(attrs config.Attributes, env map[string]string, body string) (string, error) {
	return r.render(attrs, env, body)
}

func (r *Renderer) render(attrs config.Attributes, env map[string]string, body string) (string, error) {
	var sb strings.Builder
	err := r.tmpl.Execute(&sb, documentData{
		Title:       attrs.Title,
		Favicon:     attrs.Favicon,
		Author:      attrs.Author,
		Description: attrs.Description,
		Scripts:     attrs.Scripts,
		Styles:      attrs.Styles,
		Env:         template.JS(envObject(env)),
		Body:        template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return sb.String(), nil
}

// envObject builds the object literal assigned to window.ENV. Keys are sorted
// so renders are deterministic; an empty environment renders as {}.
func envObject(env map[string]string) string {
	if len(env) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{\n")
	for i, k := range keys {
		fmt.Fprintf(&sb, "        \"%s\": \"%s\"", jsEscaper.Replace(k), jsEscaper.Replace(env[k]))
		if i < len(keys)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("      }")
	return sb.String()
}

// jsEscaper escapes the characters that would break out of a double-quoted
// script string. Environment values are untrusted input; an unescaped quote
// or control character would corrupt the generated script.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)
