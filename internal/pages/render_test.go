package pages

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druskus20/bageri/internal/config"
)

func TestRenderSPAShell(t *testing.T) {
	attrs := config.Attributes{Title: "Bageri App", Favicon: "favicon.ico"}

	html, err := NewRenderer().RenderSPA(attrs, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, `<meta charset="UTF-8">`)
	assert.Contains(t, html, `<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	assert.Contains(t, html, "<title>Bageri App</title>")
	assert.Contains(t, html, `<link rel="icon" href="favicon.ico">`)
	assert.Contains(t, html, `<body><div id="app"></div></body>`)
	assert.Contains(t, html, "window.ENV = {};")
}

func TestRenderConditionalMetaTags(t *testing.T) {
	r := NewRenderer()

	bare, err := r.RenderSPA(config.Attributes{Title: "T"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, bare, `rel="icon"`)
	assert.NotContains(t, bare, `name="author"`)
	assert.NotContains(t, bare, `name="description"`)

	full, err := r.RenderSPA(config.Attributes{
		Title:       "T",
		Favicon:     "f.png",
		Author:      "Ada",
		Description: "A site",
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, full, `<link rel="icon" href="f.png">`)
	assert.Contains(t, full, `<meta name="author" content="Ada">`)
	assert.Contains(t, full, `<meta name="description" content="A site">`)
}

func TestRenderScriptAndStyleOrder(t *testing.T) {
	attrs := Resolve(
		config.Attributes{Title: "T", Scripts: []string{"a.js"}, Styles: []string{"base.css"}},
		config.Attributes{Scripts: []string{"b.js"}, Styles: []string{"page.css"}},
	)

	html, err := NewRenderer().RenderSPA(attrs, nil)
	require.NoError(t, err)

	a := strings.Index(html, `src="a.js"`)
	b := strings.Index(html, `src="b.js"`)
	require.GreaterOrEqual(t, a, 0)
	require.GreaterOrEqual(t, b, 0)
	assert.Less(t, a, b, "default scripts must load before page scripts")

	assert.Contains(t, html, `<script type="module" src="a.js"></script>`)
	assert.Contains(t, html, `<link rel="stylesheet" href="base.css">`)

	base := strings.Index(html, `href="base.css"`)
	page := strings.Index(html, `href="page.css"`)
	assert.Less(t, base, page)
}

func TestRenderEnvInjectionRoundTrip(t *testing.T) {
	env := map[string]string{
		"API_URL": `http://x"y`,
		"MULTI":   "line1\nline2\ttabbed",
		"PATH":    `C:\bin`,
	}

	html, err := NewRenderer().RenderSPA(config.Attributes{Title: "T"}, env)
	require.NoError(t, err)

	// The injected object literal must parse back to the original values.
	m := regexp.MustCompile(`(?s)window\.ENV = (\{.*?\});`).FindStringSubmatch(html)
	require.Len(t, m, 2)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(m[1]), &parsed))
	assert.Equal(t, env, parsed)
}

func TestRenderEnvKeysSorted(t *testing.T) {
	env := map[string]string{"ZEBRA": "1", "ALPHA": "2", "MID": "3"}

	html, err := NewRenderer().RenderSPA(config.Attributes{Title: "T"}, env)
	require.NoError(t, err)

	alpha := strings.Index(html, `"ALPHA"`)
	mid := strings.Index(html, `"MID"`)
	zebra := strings.Index(html, `"ZEBRA"`)
	assert.True(t, alpha < mid && mid < zebra)
}

func TestRenderStaticWrapsBody(t *testing.T) {
	body := ExtractBody(`<html><head>x</head><body class="x">hi</body></html>`, testLogger())

	html, err := NewRenderer().RenderStatic(config.Attributes{Title: "Page"}, nil, body)
	require.NoError(t, err)

	assert.Contains(t, html, "<body>hi</body>")
	assert.Contains(t, html, "<title>Page</title>")
	// Exactly one head: the generated one.
	assert.Equal(t, 1, strings.Count(html, "<head>"))
}

func TestEnvObjectEmpty(t *testing.T) {
	assert.Equal(t, "{}", envObject(nil))
	assert.Equal(t, "{}", envObject(map[string]string{}))
}
