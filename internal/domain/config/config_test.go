package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainerr "dailydigest/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	yml := `
site:
  title: "Paper Radar"
build:
  issues_dir: data/issues
  papers_per_issue: 5
serve:
  addr: "127.0.0.1:9000"
  watch: false
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Paper Radar", cfg.Site.Title)
	assert.Equal(t, "data/issues", cfg.Build.IssuesDir)
	assert.Equal(t, 5, cfg.Build.PapersPerIssue)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
	assert.False(t, cfg.Serve.Watch)
	// untouched fields keep defaults
	assert.Equal(t, "themes", cfg.Build.ThemeDir)
	assert.False(t, cfg.Build.Now.IsZero())
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	cfg := Default()
	cfg.Site.Title = " "
	cfg.Site.SiteURL = "ftp://example.com"
	cfg.Build.IssuesDir = ""
	cfg.Serve.Addr = "8080"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerr.ErrInvalid))

	var ve domainerr.ValidationError
	require.True(t, errors.As(err, &ve))
	var fields []string
	for _, it := range ve.Items {
		fields = append(fields, it.Field)
	}
	assert.ElementsMatch(t, []string{"site.title", "site.site_url", "build.issues_dir", "serve.addr"}, fields)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Site.Title, cfg.Site.Title)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: [unclosed"), 0o644))
	_, err := LoadOrDefault(path)
	require.Error(t, err)
}
