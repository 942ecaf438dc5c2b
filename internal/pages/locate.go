package pages

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/druskus20/bageri/internal/logging"
)

// Locate resolves the on-disk source files for a static HTML page.
//
// Without a pattern the candidate is <sourceDir>/<name>.html; a missing file
// is a warning, not an error, and the page is skipped for this build. With a
// pattern, the direct entries of sourceDir are filtered to .html names
// matching the pattern. Results are sorted lexicographically so builds are
// reproducible.
func Locate(sourceDir, name, pattern string, logger *logging.Logger) ([]string, error) {
	log := logger.WithComponent("pages")

	if pattern == "" {
		path := filepath.Join(sourceDir, name+".html")
		if _, err := os.Stat(path); err != nil {
			log.Warn("HTML source file not found, skipping page", "page", name, "path", path)
			return nil, nil
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", sourceDir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".html") && globMatch(pattern, entry.Name()) {
			matches = append(matches, filepath.Join(sourceDir, entry.Name()))
		}
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		log.Warn("no HTML files match pattern, skipping page",
			"page", name, "pattern", pattern, "dir", sourceDir)
	}
	return matches, nil
}

// globMatch implements the two-segment glob used by html_pages patterns. A
// pattern with exactly one '*' splits into prefix and suffix; anything else
// falls back to substring containment. This deliberately does not implement
// full glob semantics ('?', multiple '*').
func globMatch(pattern, name string) bool {
	if strings.Count(pattern, "*") == 1 {
		prefix, suffix, _ := strings.Cut(pattern, "*")
		return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix)
	}
	return strings.Contains(name, pattern)
}
