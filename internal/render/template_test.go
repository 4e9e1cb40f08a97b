package render

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"dailydigest/internal/domain/config"
	"dailydigest/internal/domain/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeDir = "../../themes"

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(themeDir, "default")
	require.NoError(t, err)
	return r
}

func TestNewTemplateRendererMissingTheme(t *testing.T) {
	_, err := NewTemplateRenderer(t.TempDir(), "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing template")
}

func TestCheckThemeTemplates(t *testing.T) {
	require.NoError(t, CheckThemeTemplates(filepath.Join(themeDir, "default", "templates")))
}

func TestRenderPaperBlocks(t *testing.T) {
	r := newTestRenderer(t)
	body := "## Method\n> [!NOTE] heads up\n- a\n- b\n```\nfmt.Println(1)\n```\n*Figure: pipeline*\ntext <b>"
	page := PaperPage{
		Site:       config.Default().Site,
		Date:       "2026-02-12",
		IssueTitle: "AI Daily 2026-02-12",
		Item:       content.Item{ID: "p1", Title: "Paper One", Authors: "Ada", Tags: []string{"rl"}},
		Blocks:     ParseBlocks(body),
		Title:      "Paper One",
	}
	out, err := r.RenderPaper(context.Background(), page)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<h2>Method</h2>")
	assert.Contains(t, html, `<aside class="callout">heads up</aside>`)
	assert.Contains(t, html, "<li>a</li><li>b</li>")
	assert.Contains(t, html, `class="chroma"`)
	assert.Contains(t, html, `<p class="figure-caption">pipeline</p>`)
	assert.Contains(t, html, "text &lt;b&gt;")
	assert.Contains(t, html, `href="/tags/rl/"`)
	assert.Contains(t, html, `href="/issues/2026-02-12/"`)
}

func TestRenderIssue(t *testing.T) {
	r := newTestRenderer(t)
	is := content.Issue{
		Date:  "2026-02-12",
		Title: "AI Daily 2026-02-12",
		Papers: []content.Item{
			{ID: "p1", Title: "One", Summary: "S1", Image: "/issues/2026-02-12/assets/figures/p1.png"},
		},
	}
	page := IssuePage{
		Site:     config.Default().Site,
		Issue:    is,
		Sections: ParseDigest("## 今日亮点\n- big day\n## In Focus\n### One\nwhy it matters"),
		Papers:   is.Papers,
		Total:    1,
		Title:    is.Title,
	}
	out, err := r.RenderIssue(context.Background(), page)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<li>big day</li>")
	assert.Contains(t, html, `<h3 class="focus-title">One</h3>`)
	assert.Contains(t, html, `href="/issues/2026-02-12/papers/p1/"`)
	assert.Contains(t, html, "Paper 1")
	assert.NotContains(t, html, "Trend Observations")
	assert.NotContains(t, html, "X Daily Snapshot")
}

func TestRenderHomeAndNotFound(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderHome(context.Background(), HomePage{
		Site:   config.Default().Site,
		Issues: []IssueCard{{Date: "2026-02-12", Title: "T", PaperCount: 3, TopTags: []string{"rl", "moe"}}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Top topics: rl, moe")

	out, err = r.RenderNotFound(context.Background(), NotFoundPage{Site: config.Default().Site, Path: "/nope"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<code>/nope</code>")
}

func TestMarkdownRenderer(t *testing.T) {
	res, err := NewMarkdownRenderer().Render([]byte("## Hot Topics\n- **agents** https://x.com/a\n\n```go\nfmt.Println(1)\n```\n"))
	require.NoError(t, err)
	html := string(res)
	assert.Contains(t, html, "<strong>agents</strong>")
	assert.Contains(t, html, `<a href="https://x.com/a">`)
	assert.Contains(t, html, `class="chroma"`)
	assert.Contains(t, html, `<h2 id="hot-topics">Hot Topics</h2>`)
}

func TestHighlightCodeEscapesPlainText(t *testing.T) {
	out := string(HighlightCode("<script>alert(1)</script>"))
	assert.False(t, strings.Contains(out, "<script>"))
}
