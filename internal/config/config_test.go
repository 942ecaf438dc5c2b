package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druskus20/bageri/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New(logging.DefaultOptions())
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{}`)

	cfg, err := Load(path, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "Bageri App", cfg.DefaultAttributes.Title)
	assert.Equal(t, "favicon.ico", cfg.DefaultAttributes.Favicon)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, "src", cfg.SourceDir)
	assert.Equal(t, []string{"src"}, cfg.WatchPatterns)

	// Default page set is a single SPA page named "index".
	require.Contains(t, cfg.SPAPages, "index")
	assert.Equal(t, []string{"index.js"}, cfg.SPAPages["index"].Scripts)
	assert.Empty(t, cfg.HTMLPages)
	assert.NotNil(t, cfg.Env)
}

func TestLoadWithComments(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{
		// project metadata
		"default_attributes": {
			"title": "My Site", // overrides the default
			"scripts": ["app.js"],
		},
		"spa_pages": {
			"home": { "title": "Home" },
		},
		"html_pages": {
			"blog": { "pattern": "blog-*.html", "description": "posts" },
		},
		"watch_patterns": ["src", "assets/*.css"],
		"pre_hook": ["echo hi"],
		"output_dir": "public",
	}`)

	cfg, err := Load(path, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "My Site", cfg.DefaultAttributes.Title)
	assert.Equal(t, []string{"app.js"}, cfg.DefaultAttributes.Scripts)
	assert.Equal(t, "Home", cfg.SPAPages["home"].Title)
	assert.Equal(t, "blog-*.html", cfg.HTMLPages["blog"].Pattern)
	assert.Equal(t, "posts", cfg.HTMLPages["blog"].Description)
	assert.Equal(t, []string{"src", "assets/*.css"}, cfg.WatchPatterns)
	assert.Equal(t, []string{"echo hi"}, cfg.PreHook)
	assert.Equal(t, "public", cfg.OutputDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json5"), testLogger())
	assert.Error(t, err)
}

func TestLoadUnparseable(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{"output_dir": `)
	_, err := Load(path, testLogger())
	assert.Error(t, err)
}

func TestLoadExplicitPagesSuppressDefaultPage(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{
		"html_pages": { "about": {} },
	}`)

	cfg, err := Load(path, testLogger())
	require.NoError(t, err)

	assert.NotContains(t, cfg.SPAPages, "index")
	assert.Contains(t, cfg.HTMLPages, "about")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "dev.env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		"# comment\n\nAPI_URL=http://localhost:8080\nNAME=\"quoted value\"\n",
	), 0o644))

	path := writeConfig(t, dir, `{ "env_files": { "dev": "`+envPath+`" } }`)

	t.Setenv("NODE_ENV", "development")
	cfg, err := Load(path, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Env["API_URL"])
	assert.Equal(t, "quoted value", cfg.Env["NAME"])
}

func TestLoadMissingEnvFileIsTolerated(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{ "env_files": { "dev": "`+filepath.Join(dir, "absent.env")+`" } }`)

	cfg, err := Load(path, testLogger())
	require.NoError(t, err)
	assert.Empty(t, cfg.Env)
}

func TestLoadProductionEnvSelection(t *testing.T) {
	dir := t.TempDir()
	prdPath := filepath.Join(dir, "prd.env")
	require.NoError(t, os.WriteFile(prdPath, []byte("MODE=prd\n"), 0o644))
	devPath := filepath.Join(dir, "dev.env")
	require.NoError(t, os.WriteFile(devPath, []byte("MODE=dev\n"), 0o644))

	path := writeConfig(t, dir, `{ "env_files": { "dev": "`+devPath+`", "prd": "`+prdPath+`" } }`)

	t.Setenv("NODE_ENV", "production")
	cfg, err := Load(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "prd", cfg.Env["MODE"])
}
