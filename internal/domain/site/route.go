package site

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

type RouteKind string

const (
	RouteHome     RouteKind = "home"
	RouteIssue    RouteKind = "issue"
	RoutePaper    RouteKind = "paper"
	RouteTag      RouteKind = "tag"
	RouteFigure   RouteKind = "figure"
	RouteNotFound RouteKind = "404"
)

type Route struct {
	Kind RouteKind
	Date string
	Key  string
	Path string
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Date != "" {
		parts = append(parts, "date="+r.Date)
	}
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	if r.Path != "" {
		parts = append(parts, "path="+r.Path)
	}
	return strings.Join(parts, " ")
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDate 判断是否为 YYYY-MM-DD 形式的期号。
func IsDate(s string) bool {
	return dateRe.MatchString(s)
}

func IssuePath(date string) string {
	return fmt.Sprintf("/issues/%s/", date)
}

func PaperPath(date, id string) string {
	return fmt.Sprintf("/issues/%s/papers/%s/", date, url.PathEscape(id))
}

func TagPath(tag string) string {
	return "/tags/" + url.PathEscape(tag) + "/"
}

// FigurePath 图片地址：/issues/{date}/assets/figures/{filename}
func FigurePath(date, filename string) string {
	return fmt.Sprintf("/issues/%s/assets/figures/%s", date, url.PathEscape(filename))
}

// ParseFigurePath 是 FigurePath 的逆操作，拒绝非法日期和 ".." 片段。
func ParseFigurePath(p string) (date, filename string, ok bool) {
	rest, found := strings.CutPrefix(p, "/issues/")
	if !found {
		return "", "", false
	}
	date, rest, found = strings.Cut(rest, "/")
	if !found || !IsDate(date) {
		return "", "", false
	}
	filename, found = strings.CutPrefix(rest, "assets/figures/")
	if !found || filename == "" {
		return "", "", false
	}
	if unescaped, err := url.PathUnescape(filename); err == nil {
		filename = unescaped
	}
	for _, seg := range strings.FieldsFunc(filename, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return "", "", false
		}
	}
	if strings.ContainsAny(filename, "/\\") {
		return "", "", false
	}
	return date, filename, true
}

// ParseRoute 把转义形式的请求路径归类为路由，无法识别时返回 RouteNotFound。
func ParseRoute(escaped string) Route {
	if escaped == "/" {
		return Route{Kind: RouteHome, Path: "/"}
	}
	if date, file, ok := ParseFigurePath(escaped); ok {
		return Route{Kind: RouteFigure, Date: date, Key: file, Path: escaped}
	}

	nf := Route{Kind: RouteNotFound, Path: escaped}
	parts := strings.Split(strings.Trim(escaped, "/"), "/")
	for i, seg := range parts {
		u, err := url.PathUnescape(seg)
		if err != nil || u == "" {
			return nf
		}
		parts[i] = u
	}
	switch {
	case len(parts) == 2 && parts[0] == "issues" && IsDate(parts[1]):
		return Route{Kind: RouteIssue, Date: parts[1], Path: escaped}
	case len(parts) == 4 && parts[0] == "issues" && IsDate(parts[1]) && parts[2] == "papers":
		return Route{Kind: RoutePaper, Date: parts[1], Key: parts[3], Path: escaped}
	case len(parts) == 2 && parts[0] == "tags":
		return Route{Kind: RouteTag, Key: parts[1], Path: escaped}
	}
	return nf
}

// FigureContentType 按扩展名推断图片类型，未知类型按 svg 处理。
func FigureContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/svg+xml"
	}
}
