package render

import (
	"strings"
	"testing"

	"dailydigest/internal/domain/content"
	"github.com/stretchr/testify/assert"
)

func TestParseDigest(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"title: AI Daily 2026-02-12",
		"---",
		"# AI Daily",
		"## 🔥 今日亮点",
		"### sub heading skipped",
		"- **RL scaling** keeps winning",
		"> 2. quoted numbered",
		"| a | b |",
		"## 趋势观察",
		"Some filler prose.",
		"1. Agents use tools",
		"- MoE everywhere",
		"2、中文编号",
		"## 重点关注",
		"### Item A",
		"first line",
		"→ [read more](/papers/a)",
		"- second line",
		"### Item B",
		"***",
	}, "\n")

	got := ParseDigest(text)
	assert.Equal(t, []string{"**RL scaling** keeps winning", "quoted numbered"}, got.Highlights)
	assert.Equal(t, []string{"Agents use tools", "MoE everywhere", "中文编号"}, got.Trends)
	assert.Equal(t, []content.FocusEntry{
		{Title: "Item A", Text: "first line second line"},
		{Title: "Item B", Text: ""},
	}, got.Focus)
}

func TestParseDigestFocusScenario(t *testing.T) {
	got := ParseDigest("## In Focus\n### Item A\nline one\nline two\n### Item B")
	assert.Equal(t, []content.FocusEntry{
		{Title: "Item A", Text: "line one line two"},
		{Title: "Item B", Text: ""},
	}, got.Focus)
	assert.Equal(t, []string{NoHighlights}, got.Highlights)
	assert.Empty(t, got.Trends)
}

func TestParseDigestFlushOnTrendEntry(t *testing.T) {
	got := ParseDigest("重点关注\n### A\ntext\nTrend Observations\n- t1\nHighlights\n- h1")
	assert.Equal(t, []content.FocusEntry{{Title: "A", Text: "text"}}, got.Focus)
	assert.Equal(t, []string{"t1"}, got.Trends)
	assert.Equal(t, []string{"h1"}, got.Highlights)
}

func TestParseDigestIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"no markers at all",
		"### orphan\n→ arrow",
		"重点关注\nline before any heading",
		"\x00\xff garbage",
		"---\n---\n|||",
	}
	for _, in := range inputs {
		got := ParseDigest(in)
		assert.NotEmpty(t, got.Highlights, "%q", in)
		assert.NotNil(t, got.Trends)
		assert.NotNil(t, got.Focus)
	}
}

func TestParseDigestOrphanFocusLinesDropped(t *testing.T) {
	got := ParseDigest("重点关注\nloose line\n### A\nkept")
	assert.Equal(t, []content.FocusEntry{{Title: "A", Text: "kept"}}, got.Focus)
}
