package render

import (
	"dailydigest/internal/domain/content"
	"regexp"
	"strings"
)

// 导读中的分节标记，按子串匹配，可以出现在更长的标题行里。
var (
	HighlightsMarkers = []string{"今日亮点", "Highlights"}
	TrendsMarkers     = []string{"趋势观察", "Trend Observations"}
	FocusMarkers      = []string{"重点关注", "In Focus"}
)

const NoHighlights = "No highlights for this issue yet."

type digestState int

const (
	stateNone digestState = iota
	stateHighlights
	stateTrends
	stateFocus
)

var (
	hrRe        = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	trendItemRe = regexp.MustCompile(`^(?:\d+[.)]\s+|\d+、|[-*+]\s+)`)
	leadMarkRe  = regexp.MustCompile(`^(?:[-*+]\s+|\d+[.)]\s+|\d+、\s*|>\s*)+`)
)

type digestParser struct {
	state   digestState
	out     content.DigestSections
	current *content.FocusEntry
	text    []string
}

// digestRule 按顺序匹配，第一条命中的规则处理该行。
type digestRule struct {
	match  func(p *digestParser, line string) bool
	action func(p *digestParser, line string)
}

var digestRules = []digestRule{
	{
		match:  func(_ *digestParser, line string) bool { return line == "" || isTableRow(line) || hrRe.MatchString(line) },
		action: func(*digestParser, string) {},
	},
	{
		match:  func(_ *digestParser, line string) bool { return containsAny(line, HighlightsMarkers) },
		action: func(p *digestParser, _ string) { p.state = stateHighlights },
	},
	{
		match: func(_ *digestParser, line string) bool { return containsAny(line, TrendsMarkers) },
		action: func(p *digestParser, _ string) {
			p.flushFocus()
			p.state = stateTrends
		},
	},
	{
		match: func(_ *digestParser, line string) bool { return containsAny(line, FocusMarkers) },
		action: func(p *digestParser, _ string) {
			p.flushFocus()
			p.state = stateFocus
		},
	},
	{
		match: func(p *digestParser, line string) bool { return p.state == stateHighlights },
		action: func(p *digestParser, line string) {
			if strings.HasPrefix(line, "#") {
				return
			}
			if s := cleanLine(line); s != "" {
				p.out.Highlights = append(p.out.Highlights, s)
			}
		},
	},
	{
		match: func(p *digestParser, line string) bool { return p.state == stateTrends },
		action: func(p *digestParser, line string) {
			if !trendItemRe.MatchString(line) {
				return
			}
			if s := cleanLine(line); s != "" {
				p.out.Trends = append(p.out.Trends, s)
			}
		},
	},
	{
		match: func(p *digestParser, line string) bool { return p.state == stateFocus },
		action: func(p *digestParser, line string) {
			switch {
			case strings.HasPrefix(line, "### "):
				p.flushFocus()
				p.current = &content.FocusEntry{Title: strings.TrimSpace(line[4:])}
			case isArrowLine(line):
			case p.current != nil:
				if s := cleanLine(line); s != "" {
					p.text = append(p.text, s)
				}
			}
		},
	},
}

// ParseDigest 把导读文本切分为亮点、趋势观察和重点解读。
// 任何输入都不会失败，亮点为空时补一条占位文本。
func ParseDigest(text string) content.DigestSections {
	p := &digestParser{
		out: content.DigestSections{
			Highlights: []string{},
			Trends:     []string{},
			Focus:      []content.FocusEntry{},
		},
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		for _, rule := range digestRules {
			if rule.match(p, line) {
				rule.action(p, line)
				break
			}
		}
	}
	p.flushFocus()

	if len(p.out.Highlights) == 0 {
		p.out.Highlights = append(p.out.Highlights, NoHighlights)
	}
	return p.out
}

func (p *digestParser) flushFocus() {
	if p.current == nil {
		return
	}
	p.current.Text = strings.Join(p.text, " ")
	p.out.Focus = append(p.out.Focus, *p.current)
	p.current = nil
	p.text = nil
}

func cleanLine(line string) string {
	return strings.TrimSpace(leadMarkRe.ReplaceAllString(strings.TrimSpace(line), ""))
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|")
}

func isArrowLine(line string) bool {
	for _, p := range []string{"→", "->", "➡", "👉"} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
