package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2026-02-12"))
	assert.False(t, IsDate("2026-2-12"))
	assert.False(t, IsDate("2026-02-12x"))
	assert.False(t, IsDate("drafts"))
}

func TestFigurePathRoundTrip(t *testing.T) {
	p := FigurePath("2026-02-12", "2602.01234.png")
	assert.Equal(t, "/issues/2026-02-12/assets/figures/2602.01234.png", p)

	date, name, ok := ParseFigurePath(p)
	assert.True(t, ok)
	assert.Equal(t, "2026-02-12", date)
	assert.Equal(t, "2602.01234.png", name)
}

func TestParseFigurePathRejects(t *testing.T) {
	cases := []string{
		"/issues/2026-02-12/assets/figures/",
		"/issues/20260212/assets/figures/a.png",
		"/issues/2026-02-12/assets/figures/../digest.md",
		"/issues/2026-02-12/assets/figures/%2e%2e",
		"/issues/2026-02-12/assets/figures/sub/a.png",
		"/issues/2026-02-12/papers/a.png",
		"/other/2026-02-12/assets/figures/a.png",
	}
	for _, c := range cases {
		_, _, ok := ParseFigurePath(c)
		assert.False(t, ok, c)
	}
}

func TestFigureContentType(t *testing.T) {
	cases := map[string]string{
		"a.png":  "image/png",
		"a.JPG":  "image/jpeg",
		"a.jpeg": "image/jpeg",
		"a.webp": "image/webp",
		"a.gif":  "image/gif",
		"a.svg":  "image/svg+xml",
		"a":      "image/svg+xml",
	}
	for name, want := range cases {
		assert.Equal(t, want, FigureContentType(name), name)
	}
}

func TestRouteString(t *testing.T) {
	r := Route{Kind: RoutePaper, Date: "2026-02-12", Key: "x", Path: PaperPath("2026-02-12", "x")}
	assert.Equal(t, "paper date=2026-02-12 key=x path=/issues/2026-02-12/papers/x/", r.String())
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Kind: RouteHome, Path: "/"}},
		{"/issues/2026-02-12/", Route{Kind: RouteIssue, Date: "2026-02-12", Path: "/issues/2026-02-12/"}},
		{"/issues/2026-02-12/papers/2602.01234/", Route{Kind: RoutePaper, Date: "2026-02-12", Key: "2602.01234", Path: "/issues/2026-02-12/papers/2602.01234/"}},
		{"/tags/tool%20use/", Route{Kind: RouteTag, Key: "tool use", Path: "/tags/tool%20use/"}},
		{"/issues/2026-02-12/assets/figures/a.png", Route{Kind: RouteFigure, Date: "2026-02-12", Key: "a.png", Path: "/issues/2026-02-12/assets/figures/a.png"}},
		{"/issues/2026-02-12/extra/", Route{Kind: RouteNotFound, Path: "/issues/2026-02-12/extra/"}},
		{"/issues/not-a-date/", Route{Kind: RouteNotFound, Path: "/issues/not-a-date/"}},
		{"/tags//", Route{Kind: RouteNotFound, Path: "/tags//"}},
		{"/issues/2026-02-12/assets/figures/../digest.md", Route{Kind: RouteNotFound, Path: "/issues/2026-02-12/assets/figures/../digest.md"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRoute(tt.path), tt.path)
	}
}
