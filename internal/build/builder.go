// Package build orchestrates a full site build: pre-hooks, page rendering
// and output writing.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/druskus20/bageri/internal/config"
	"github.com/druskus20/bageri/internal/hooks"
	"github.com/druskus20/bageri/internal/logging"
	"github.com/druskus20/bageri/internal/pages"
)

// Builder runs builds for one loaded configuration.
type Builder struct {
	cfg      *config.Config
	logger   *logging.Logger
	hooks    *hooks.Runner
	renderer *pages.Renderer
}

// New creates a builder. The hook runner is shared so its progress display
// settings follow the CLI flags.
func New(cfg *config.Config, logger *logging.Logger, runner *hooks.Runner) *Builder {
	return &Builder{
		cfg:      cfg,
		logger:   logger.WithComponent("build"),
		hooks:    runner,
		renderer: pages.NewRenderer(),
	}
}

// Build performs one full build: every rebuild regenerates all pages. Hook
// and write failures abort the build; already-written files are not rolled
// back. Pages with no source files are skipped with a warning only.
func (b *Builder) Build(ctx context.Context) error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", b.cfg.OutputDir, err)
	}

	if err := b.hooks.Run(ctx, b.cfg.PreHook); err != nil {
		return err
	}

	if err := b.buildSPAPages(); err != nil {
		return err
	}
	if err := b.buildHTMLPages(); err != nil {
		return err
	}

	b.logger.Info("build complete", "output_dir", b.cfg.OutputDir)
	return nil
}

func (b *Builder) buildSPAPages() error {
	for _, name := range sortedKeys(b.cfg.SPAPages) {
		attrs := pages.Resolve(b.cfg.DefaultAttributes, b.cfg.SPAPages[name])
		html, err := b.renderer.RenderSPA(attrs, b.cfg.Env)
		if err != nil {
			return fmt.Errorf("rendering SPA page %s: %w", name, err)
		}
		if err := b.writePage(name+".html", html); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildHTMLPages() error {
	for _, name := range sortedKeys(b.cfg.HTMLPages) {
		page := b.cfg.HTMLPages[name]
		attrs := pages.Resolve(b.cfg.DefaultAttributes, page.Attributes)

		sources, err := pages.Locate(b.cfg.SourceDir, name, page.Pattern, b.logger)
		if err != nil {
			return fmt.Errorf("locating sources for page %s: %w", name, err)
		}

		for _, source := range sources {
			content, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("reading HTML source %s: %w", source, err)
			}

			body := pages.ExtractBody(string(content), b.logger)
			html, err := b.renderer.RenderStatic(attrs, b.cfg.Env, body)
			if err != nil {
				return fmt.Errorf("rendering HTML page %s: %w", name, err)
			}

			// Output names derive from the source filename, not the page
			// key, so a multi-file pattern cannot collide with itself.
			if err := b.writePage(outputName(name, page.Pattern, source), html); err != nil {
				return err
			}
		}
	}
	return nil
}

// outputName picks the output filename for one rendered HTML source. Pages
// located by convention keep the page name; pattern matches keep the matched
// filename.
func outputName(pageName, pattern, source string) string {
	if pattern == "" {
		return pageName + ".html"
	}
	return filepath.Base(source)
}

func (b *Builder) writePage(filename, html string) error {
	path := filepath.Join(b.cfg.OutputDir, filename)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing HTML file %s: %w", path, err)
	}
	b.logger.Info("generated HTML file", "path", path)
	return nil
}

// sortedKeys returns map keys in lexicographic order so build output and
// logs are stable run to run.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clean removes the build artifacts: the output directory and the .lustre
// scratch directory some hooks produce.
func Clean(cfg *config.Config, logger *logging.Logger) error {
	log := logger.WithComponent("build")
	for _, dir := range []string{cfg.OutputDir, ".lustre"} {
		if dir == "" || dir == "." {
			log.Warn("refusing to clean suspicious directory", "dir", dir)
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			log.Debug("directory does not exist, skipping", "dir", dir)
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing directory %s: %w", dir, err)
		}
		log.Info("cleaned directory", "dir", dir)
	}
	return nil
}
