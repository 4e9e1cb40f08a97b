package ingest

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		header map[string]string
		body   string
	}{
		{
			name:   "basic",
			raw:    "---\ntitle: \"Hello: World\"\nAuthors:  A, B \n---\nbody line\nmore",
			header: map[string]string{"title": "Hello: World", "authors": "A, B"},
			body:   "body line\nmore",
		},
		{
			name:   "no header",
			raw:    "# Title\ntext",
			header: map[string]string{},
			body:   "# Title\ntext",
		},
		{
			name:   "fence without newline",
			raw:    "---title: x",
			header: map[string]string{},
			body:   "---title: x",
		},
		{
			name:   "unterminated header",
			raw:    "---\ntitle: x\nbody",
			header: map[string]string{},
			body:   "---\ntitle: x\nbody",
		},
		{
			name:   "last duplicate wins and colonless lines ignored",
			raw:    "---\ntitle: one\njust text\nTITLE: two\n---\n",
			header: map[string]string{"title": "two"},
			body:   "",
		},
		{
			name:   "single quotes are kept",
			raw:    "---\nurl: 'x'\n---\nb",
			header: map[string]string{"url": "'x'"},
			body:   "b",
		},
		{
			name:   "crlf",
			raw:    "---\r\ntitle: x\r\n---\r\nbody",
			header: map[string]string{"title": "x"},
			body:   "body",
		},
		{
			name:   "empty",
			raw:    "",
			header: map[string]string{},
			body:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := SplitFrontMatter(tt.raw)
			assert.Equal(t, tt.header, header)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestSplitFrontMatterRejoin(t *testing.T) {
	raw := "---\ntitle: A Paper\nauthors: Ada\ntags: [rl, moe]\n---\n# A Paper\n\nFirst sentence.\n"
	header, body := SplitFrontMatter(raw)

	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("---\n")
	for _, k := range keys {
		b.WriteString(k + ": " + header[k] + "\n")
	}
	b.WriteString("---\n")
	b.WriteString(body)

	header2, body2 := SplitFrontMatter(b.String())
	assert.Equal(t, header, header2)
	assert.Equal(t, body, body2)
}
