package config

import (
	domainerr "dailydigest/internal/domain/errors"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
	Serve ServeConfig `yaml:"serve"`
}

type SiteConfig struct {
	Title    string `yaml:"title"`
	Tagline  string `yaml:"tagline"`
	SiteURL  string `yaml:"site_url"`
	Theme    string `yaml:"theme"`
	Language string `yaml:"language"`
}

type BuildConfig struct {
	IssuesDir      string    `yaml:"issues_dir"`
	ThemeDir       string    `yaml:"theme_dir"`
	IndexPath      string    `yaml:"index_path"`
	PapersPerIssue int       `yaml:"papers_per_issue"`
	Now            time.Time `yaml:"-"`
}

type ServeConfig struct {
	Addr  string `yaml:"addr"`
	Watch bool   `yaml:"watch"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:    "AI Daily",
			Tagline:  "Frontier AI Papers, Curated as an Editorial Daily Brief",
			SiteURL:  "http://localhost:8080",
			Theme:    "default",
			Language: "zh-CN",
		},
		Build: BuildConfig{
			IssuesDir:      "issues",
			ThemeDir:       "themes",
			IndexPath:      ".dailydigest/index.db",
			PapersPerIssue: 10,
			Now:            time.Now(),
		},
		Serve: ServeConfig{
			Addr:  ":8080",
			Watch: true,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Add("site.site_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}
	if strings.TrimSpace(c.Site.Theme) == "" {
		ve.Add("site.theme", "must not be empty")
	}

	if strings.TrimSpace(c.Build.IssuesDir) == "" {
		ve.Add("build.issues_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.ThemeDir) == "" {
		ve.Add("build.theme_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.IndexPath) == "" {
		ve.Add("build.index_path", "must not be empty")
	}
	if c.Build.PapersPerIssue < 0 {
		ve.Add("build.papers_per_issue", "must not be negative")
	}

	if addr := strings.TrimSpace(c.Serve.Addr); addr == "" {
		ve.Add("serve.addr", "must not be empty")
	} else if !strings.Contains(addr, ":") {
		ve.Add("serve.addr", "must be host:port or :port")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	// 文件中写到的字段覆盖默认值
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault 与 Load 相同，但文件不存在时使用默认配置。
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}
