package content

import (
	"sort"
	"strings"
)

const (
	UnknownAuthors = "Unknown authors"
	NoSummary      = "No summary."
)

// Item 是一期中的一篇论文条目，ID 由源文件名得出。
type Item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Authors  string   `json:"authors"`
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url"`
	Markdown string   `json:"markdown"`
	Image    string   `json:"image,omitempty"`
}

// Issue 是某一天的一期，构造后不再修改。
type Issue struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	Digest string `json:"digest,omitempty"`
	Papers []Item `json:"papers"`
}

type FocusEntry struct {
	Title string
	Text  string
}

type DigestSections struct {
	Highlights []string
	Trends     []string
	Focus      []FocusEntry
}

type BlockKind string

const (
	BlockH2        BlockKind = "h2"
	BlockH3        BlockKind = "h3"
	BlockParagraph BlockKind = "paragraph"
	BlockQuote     BlockKind = "quote"
	BlockCallout   BlockKind = "callout"
	BlockCode      BlockKind = "code"
	BlockFigure    BlockKind = "figure"
	BlockList      BlockKind = "list"
)

// Block 只有 BlockList 使用 Items，其它类型使用 Text。
type Block struct {
	Kind  BlockKind
	Text  string
	Items []string
}

func (it *Item) Normalize() {
	it.ID = strings.TrimSpace(it.ID)
	it.Title = strings.TrimSpace(it.Title)
	if it.Title == "" {
		it.Title = it.ID
	}
	it.Authors = strings.TrimSpace(it.Authors)
	if it.Authors == "" {
		it.Authors = UnknownAuthors
	}
	it.Summary = strings.TrimSpace(it.Summary)
	if it.Summary == "" {
		it.Summary = NoSummary
	}
	it.Tags = normalizeTags(it.Tags)
	it.URL = strings.TrimSpace(it.URL)
	it.Image = strings.TrimSpace(it.Image)
}

// Find 按 ID 查找条目。
func (is Issue) Find(id string) (Item, bool) {
	for _, p := range is.Papers {
		if p.ID == id {
			return p, true
		}
	}
	return Item{}, false
}

// TopTags 返回出现次数最多的 n 个标签，次数相同按首次出现顺序。
func (is Issue) TopTags(n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, p := range is.Papers {
		for _, t := range p.Tags {
			if _, ok := counts[t]; !ok {
				order = append(order, t)
			}
			counts[t]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if n >= 0 && len(order) > n {
		order = order[:n]
	}
	return order
}

func normalizeTags(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
