package pages

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/druskus20/bageri/internal/config"
)

// TestResolveProperties validates the resolution rules over arbitrary inputs.
func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("scalar resolution picks the override exactly when non-empty", prop.ForAll(
		func(defaultTitle, pageTitle string) bool {
			got := Resolve(
				config.Attributes{Title: defaultTitle},
				config.Attributes{Title: pageTitle},
			)
			if pageTitle != "" {
				return got.Title == pageTitle
			}
			return got.Title == defaultTitle
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("list resolution is defaults followed by page entries", prop.ForAll(
		func(defaultScripts, pageScripts []string) bool {
			got := Resolve(
				config.Attributes{Scripts: defaultScripts},
				config.Attributes{Scripts: pageScripts},
			)
			if len(got.Scripts) != len(defaultScripts)+len(pageScripts) {
				return false
			}
			for i, s := range defaultScripts {
				if got.Scripts[i] != s {
					return false
				}
			}
			for i, s := range pageScripts {
				if got.Scripts[len(defaultScripts)+i] != s {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestGlobMatchProperties checks the two-segment glob against its definition.
func TestGlobMatchProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(5678)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("prefix*suffix matches exactly prefix and suffix", prop.ForAll(
		func(prefix, middle, suffix string) bool {
			pattern := prefix + "*" + suffix
			name := prefix + middle + suffix
			return globMatch(pattern, name)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
