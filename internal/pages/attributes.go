// Package pages resolves page attributes, locates HTML sources and renders
// the final documents written to the output directory.
package pages

import "github.com/druskus20/bageri/internal/config"

// Resolve merges the project defaults with one page's overrides into the
// effective attribute set used for a single render.
//
// Scalar fields take the page value when it is non-empty, otherwise the
// default. List fields are the defaults followed by the page entries, both in
// declared order: default scripts must load before page scripts, and script
// order is observable behavior. No de-duplication is performed.
func Resolve(defaults, overrides config.Attributes) config.Attributes {
	return config.Attributes{
		Title:       firstNonEmpty(overrides.Title, defaults.Title),
		Favicon:     firstNonEmpty(overrides.Favicon, defaults.Favicon),
		Author:      firstNonEmpty(overrides.Author, defaults.Author),
		Description: firstNonEmpty(overrides.Description, defaults.Description),
		Scripts:     concat(defaults.Scripts, overrides.Scripts),
		Styles:      concat(defaults.Styles, overrides.Styles),
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
