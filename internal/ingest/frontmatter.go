package ingest

import (
	"strings"
)

const fence = "---"

// SplitFrontMatter 拆出开头 "---" 围起来的 key: value 头部，返回头部映射和正文。
// 没有开头分隔线或找不到结束分隔线时，返回空映射和原文。
func SplitFrontMatter(raw string) (map[string]string, string) {
	// 统一换行符
	norm := strings.ReplaceAll(raw, "\r\n", "\n")

	if !strings.HasPrefix(norm, fence+"\n") {
		return map[string]string{}, raw
	}

	lines := strings.Split(norm, "\n")
	header := make(map[string]string)
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == fence {
			return header, strings.Join(lines[i+1:], "\n")
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		header[strings.ToLower(strings.TrimSpace(key))] = unquote(strings.TrimSpace(value), '"')
	}
	return map[string]string{}, raw
}

// unquote 去掉一层成对的包裹引号。
func unquote(s string, quotes ...byte) string {
	if len(s) < 2 {
		return s
	}
	for _, q := range quotes {
		if s[0] == q && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}
