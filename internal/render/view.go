package render

import (
	"dailydigest/internal/domain/config"
	"dailydigest/internal/domain/content"
	"html/template"
	"time"
)

type IssueCard struct {
	Date       string
	Title      string
	PaperCount int
	TopTags    []string
}

type HomePage struct {
	Site      config.SiteConfig
	Issues    []IssueCard
	Generated time.Time
	Title     string
}

type IssuePage struct {
	Site      config.SiteConfig
	Issue     content.Issue
	Sections  content.DigestSections
	Papers    []content.Item
	Total     int
	XSnapshot template.HTML
	Title     string
}

type PaperPage struct {
	Site       config.SiteConfig
	Date       string
	IssueTitle string
	Item       content.Item
	Blocks     []content.Block
	Title      string
}

type TagEntry struct {
	Date string
	Item content.Item
}

type TagPage struct {
	Site    config.SiteConfig
	Tag     string
	Entries []TagEntry
	Title   string
}

type NotFoundPage struct {
	Site  config.SiteConfig
	Path  string
	Title string
}
