package ingest

import (
	"dailydigest/internal/domain/content"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	h1Re       = regexp.MustCompile(`^#\s+(.+)$`)
	listMarkRe = regexp.MustCompile(`^(?:-|(?:[*+]|\d+[.)])(?:\s|$))`)
)

type PaperOption func(*content.Item)

// WithImage 设置预先解析好的图片地址。
func WithImage(image string) PaperOption {
	return func(it *content.Item) { it.Image = image }
}

// ParsePaper 由头部映射和正文构造条目，每个字段都有兜底值。
func ParsePaper(id string, header map[string]string, body string, opts ...PaperOption) content.Item {
	it := content.Item{
		ID:       id,
		Title:    firstNonEmpty(header["title"], firstH1(body), id),
		Authors:  firstNonEmpty(header["authors"], content.UnknownAuthors),
		Summary:  ParseSummary(body),
		Tags:     ParseTags(header["tags"]),
		URL:      firstNonEmpty(header["url"], header["link"]),
		Markdown: body,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// PaperID 由文件名去掉扩展名得到。
func PaperID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseSummary 取正文第一行非空、非标题、非列表的文本。以 "-" 开头的行一律跳过，分隔线也算在内。
func ParseSummary(body string) string {
	for _, line := range strings.Split(body, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") || listMarkRe.MatchString(s) {
			continue
		}
		return s
	}
	return content.NoSummary
}

// ParseTags 解析 "[a, b, c]" 形式的标签列表。
func ParseTags(raw string) []string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")

	tags := []string{}
	for _, piece := range strings.Split(text, ",") {
		piece = strings.TrimSpace(unquote(strings.TrimSpace(piece), '"', '\''))
		if piece == "" {
			continue
		}
		tags = append(tags, piece)
	}
	return tags
}

func firstH1(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if m := h1Re.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
