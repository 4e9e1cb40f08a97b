package render

import (
	"bytes"
	"context"
	"dailydigest/internal/domain/site"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"
)

var requiredTemplates = []string{
	"home.tmpl",
	"issue.tmpl",
	"paper.tmpl",
	"tag.tmpl",
	"404.tmpl",
}

type TemplateRenderer struct {
	tpl *template.Template
}

func NewTemplateRenderer(themeDir, themeName string) (*TemplateRenderer, error) {
	dir := filepath.Join(themeDir, themeName, "templates")
	if err := CheckThemeTemplates(dir); err != nil {
		return nil, err
	}
	tpl, err := template.New("").Funcs(templateFuncs()).ParseGlob(filepath.Join(dir, "*.tmpl"))
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"nowYear":  func() int { return time.Now().Year() },
		"issueURL": site.IssuePath,
		"paperURL": site.PaperPath,
		"tagURL":   site.TagPath,
		"code":     HighlightCode,
		"add":      func(a, b int) int { return a + b },
	}
}

func (r *TemplateRenderer) RenderHome(ctx context.Context, page HomePage) ([]byte, error) {
	return r.exec("home.tmpl", page)
}

func (r *TemplateRenderer) RenderIssue(ctx context.Context, page IssuePage) ([]byte, error) {
	return r.exec("issue.tmpl", page)
}

func (r *TemplateRenderer) RenderPaper(ctx context.Context, page PaperPage) ([]byte, error) {
	return r.exec("paper.tmpl", page)
}

func (r *TemplateRenderer) RenderTag(ctx context.Context, page TagPage) ([]byte, error) {
	return r.exec("tag.tmpl", page)
}

func (r *TemplateRenderer) RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error) {
	return r.exec("404.tmpl", page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func CheckThemeTemplates(dir string) error {
	for _, name := range requiredTemplates {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
