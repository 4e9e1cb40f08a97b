package app

import (
	"dailydigest/internal/domain/site"
	"dailydigest/internal/index"
)

type RouteBuilder struct {
	Index *index.Store
}

// BuildIssueRoutes 为每一期、其条目和条目图片生成路由，期号降序。
func (rb *RouteBuilder) BuildIssueRoutes() ([]site.Route, error) {
	dates, err := rb.Index.Dates()
	if err != nil {
		return nil, err
	}
	var routes []site.Route
	for _, date := range dates {
		is, err := rb.Index.GetIssue(date)
		if err != nil {
			return nil, err
		}
		routes = append(routes, site.Route{
			Kind: site.RouteIssue,
			Date: is.Date,
			Path: site.IssuePath(is.Date),
		})
		for _, it := range is.Papers {
			routes = append(routes, site.Route{
				Kind: site.RoutePaper,
				Date: is.Date,
				Key:  it.ID,
				Path: site.PaperPath(is.Date, it.ID),
			})
			// 快照里的图片地址可能不是本站路径，这种不生成路由
			if d, name, ok := site.ParseFigurePath(it.Image); ok && d == is.Date {
				routes = append(routes, site.Route{
					Kind: site.RouteFigure,
					Date: is.Date,
					Key:  name,
					Path: it.Image,
				})
			}
		}
	}
	return routes, nil
}

func (rb *RouteBuilder) BuildTagRoutes() ([]site.Route, error) {
	tags, err := rb.Index.ListTags()
	if err != nil {
		return nil, err
	}
	var routes []site.Route
	for _, t := range tags {
		routes = append(routes, site.Route{
			Kind: site.RouteTag,
			Key:  t.Name,
			Path: site.TagPath(t.Name),
		})
	}
	return routes, nil
}

// BuildAll 返回首页、全部期、条目和标签路由。
func (rb *RouteBuilder) BuildAll() ([]site.Route, error) {
	routes := []site.Route{{Kind: site.RouteHome, Path: "/"}}
	issueRoutes, err := rb.BuildIssueRoutes()
	if err != nil {
		return nil, err
	}
	tagRoutes, err := rb.BuildTagRoutes()
	if err != nil {
		return nil, err
	}
	routes = append(routes, issueRoutes...)
	return append(routes, tagRoutes...), nil
}
