package render

import (
	"dailydigest/internal/domain/content"
	"strings"
)

const (
	calloutTag   = "[!NOTE]"
	codeFence    = "```"
	figurePrefix = "*Figure:"
)

// blockScanner 逐行扫描正文，idx 指向下一行。
type blockScanner struct {
	lines []string
	idx   int
	out   []content.Block
}

// blockRule 的 match 判断当前行，emit 消费一行或多行并输出一个块。
type blockRule struct {
	match func(line string) bool
	emit  func(s *blockScanner, line string)
}

var blockRules = []blockRule{
	{
		match: func(line string) bool { return line == "" },
		emit:  func(s *blockScanner, _ string) { s.idx++ },
	},
	{
		match: func(line string) bool { return strings.HasPrefix(line, "### ") },
		emit: func(s *blockScanner, line string) {
			s.push(content.BlockH3, strings.TrimSpace(line[4:]))
		},
	},
	{
		match: func(line string) bool { return strings.HasPrefix(line, "## ") },
		emit: func(s *blockScanner, line string) {
			s.push(content.BlockH2, strings.TrimSpace(line[3:]))
		},
	},
	{
		match: func(line string) bool { return isQuote(line) && strings.Contains(line, calloutTag) },
		emit: func(s *blockScanner, line string) {
			text := strings.Replace(quoteText(line), calloutTag, "", 1)
			s.push(content.BlockCallout, strings.TrimSpace(text))
		},
	},
	{
		match: isQuote,
		emit: func(s *blockScanner, line string) {
			s.push(content.BlockQuote, quoteText(line))
		},
	},
	{
		match: func(line string) bool { return strings.HasPrefix(line, codeFence) },
		emit: func(s *blockScanner, _ string) {
			s.idx++
			var code []string
			for s.idx < len(s.lines) {
				if strings.HasPrefix(strings.TrimSpace(s.lines[s.idx]), codeFence) {
					s.idx++
					break
				}
				code = append(code, s.lines[s.idx])
				s.idx++
			}
			s.out = append(s.out, content.Block{Kind: content.BlockCode, Text: strings.Join(code, "\n")})
		},
	},
	{
		match: func(line string) bool { return strings.HasPrefix(line, figurePrefix) },
		emit: func(s *blockScanner, line string) {
			text := strings.TrimPrefix(line, figurePrefix)
			text = strings.TrimSuffix(strings.TrimSpace(text), "*")
			s.push(content.BlockFigure, strings.TrimSpace(text))
		},
	},
	{
		match: isListItem,
		emit: func(s *blockScanner, _ string) {
			var items []string
			for s.idx < len(s.lines) {
				line := strings.TrimSpace(s.lines[s.idx])
				if !isListItem(line) {
					break
				}
				items = append(items, strings.TrimSpace(line[2:]))
				s.idx++
			}
			s.out = append(s.out, content.Block{Kind: content.BlockList, Items: items})
		},
	},
	{
		match: func(string) bool { return true },
		emit: func(s *blockScanner, line string) {
			s.push(content.BlockParagraph, strings.ReplaceAll(line, "**", ""))
		},
	},
}

// ParseBlocks 把条目正文转换成有序的块序列。块不嵌套，行序即块序。
func ParseBlocks(body string) []content.Block {
	s := &blockScanner{lines: strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")}
	for s.idx < len(s.lines) {
		line := strings.TrimSpace(s.lines[s.idx])
		for _, rule := range blockRules {
			if rule.match(line) {
				rule.emit(s, line)
				break
			}
		}
	}
	return s.out
}

func (s *blockScanner) push(kind content.BlockKind, text string) {
	s.out = append(s.out, content.Block{Kind: kind, Text: text})
	s.idx++
}

func isQuote(line string) bool {
	return strings.HasPrefix(line, "> ") || line == ">"
}

func quoteText(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, ">"))
}

func isListItem(line string) bool {
	return strings.HasPrefix(line, "- ")
}
