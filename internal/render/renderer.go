package render

import "context"

type Renderer interface {
	RenderHome(ctx context.Context, page HomePage) ([]byte, error)
	RenderIssue(ctx context.Context, page IssuePage) ([]byte, error)
	RenderPaper(ctx context.Context, page PaperPage) ([]byte, error)
	RenderTag(ctx context.Context, page TagPage) ([]byte, error)
	RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error)
}
