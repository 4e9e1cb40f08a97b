package ingest

import (
	"dailydigest/internal/domain/content"
	domainerr "dailydigest/internal/domain/errors"
	"dailydigest/internal/domain/site"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var digestTitleRe = regexp.MustCompile(`(?m)^\s*title\s*:\s*["']?(.*?)["']?\s*$`)

// Resolver 从 issues 根目录解析期号和条目。每次调用都重新读取文件，不做缓存，
// 因此可以被多个请求并发使用。
type Resolver struct {
	Root string
}

func NewResolver(root string) *Resolver {
	return &Resolver{Root: root}
}

func (r *Resolver) IssueDir(date string) string {
	return filepath.Join(r.Root, date)
}

// Dates 返回所有期号，最新的在前。
func (r *Resolver) Dates() ([]string, error) {
	return DiscoverDates(r.Root)
}

// Issues 按日期降序解析全部期。
func (r *Resolver) Issues() ([]content.Issue, error) {
	dates, err := r.Dates()
	if err != nil {
		return nil, err
	}
	out := make([]content.Issue, 0, len(dates))
	for _, d := range dates {
		rs, err := r.resolve(d)
		if err != nil {
			return nil, err
		}
		out = append(out, rs.Issue)
	}
	return out, nil
}

// Issue 解析一期，优先使用结构化快照，快照缺失或无效时回退到原始文件。
func (r *Resolver) Issue(date string) (content.Issue, error) {
	if err := r.exists(date); err != nil {
		return content.Issue{}, err
	}
	rs, err := r.resolve(date)
	return rs.Issue, err
}

// Item 按 (期号, 条目 ID) 查找条目。
func (r *Resolver) Item(date, id string) (content.Item, error) {
	is, err := r.Issue(date)
	if err != nil {
		return content.Item{}, err
	}
	it, ok := is.Find(id)
	if !ok {
		return content.Item{}, domainerr.NotFoundError{Kind: "item", Key: date + "/" + id}
	}
	return it, nil
}

// LoadRaw 忽略快照，直接从原始文件解析一期。
func (r *Resolver) LoadRaw(date string) (content.Issue, error) {
	if err := r.exists(date); err != nil {
		return content.Issue{}, err
	}
	is, err := r.parseRaw(date)
	if err != nil {
		return content.Issue{}, err
	}
	is, _ = normalizeIssue(is, date)
	return is, nil
}

// XSnapshot 读取可选的 x-snapshot.md，不存在时返回空串。
func (r *Resolver) XSnapshot(date string) string {
	if !site.IsDate(date) {
		return ""
	}
	b, err := os.ReadFile(filepath.Join(r.IssueDir(date), XSnapshotFile))
	if err != nil {
		return ""
	}
	return string(b)
}

// FigureFile 返回图片在磁盘上的路径。调用方负责校验 filename。
func (r *Resolver) FigureFile(date, filename string) string {
	return filepath.Join(r.IssueDir(date), filepath.FromSlash(FiguresDir), filename)
}

func (r *Resolver) exists(date string) error {
	nf := domainerr.NotFoundError{Kind: "issue", Key: date}
	if !site.IsDate(date) {
		return nf
	}
	dates, err := r.Dates()
	if err != nil {
		return err
	}
	if !slices.Contains(dates, date) {
		return nf
	}
	return nil
}

// resolution 是 resolve 的结果，Dropped 为因缺少 id 被丢弃的条目数。
type resolution struct {
	Issue   content.Issue
	Snap    SnapshotResult
	Dropped int
}

func (r *Resolver) resolve(date string) (resolution, error) {
	snap := LoadSnapshot(r.IssueDir(date), date)
	is := snap.Issue
	if snap.Status != SnapshotHit {
		raw, err := r.parseRaw(date)
		if err != nil {
			return resolution{Snap: snap}, err
		}
		is = raw
	}
	is, dropped := normalizeIssue(is, date)
	return resolution{Issue: is, Snap: snap, Dropped: dropped}, nil
}

func (r *Resolver) parseRaw(date string) (content.Issue, error) {
	dir := r.IssueDir(date)

	digest, err := os.ReadFile(filepath.Join(dir, DigestFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return content.Issue{}, fmt.Errorf("read digest: %w", err)
	}

	files, err := DiscoverPapers(dir)
	if err != nil {
		return content.Issue{}, fmt.Errorf("discover papers: %w", err)
	}
	papers := make([]content.Item, 0, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(f.Path)
		if err != nil {
			return content.Issue{}, fmt.Errorf("read paper %s: %w", f.Path, err)
		}
		header, body := SplitFrontMatter(string(raw))
		var opts []PaperOption
		if name := FigureName(dir, f.ID); name != "" {
			opts = append(opts, WithImage(site.FigurePath(date, name)))
		}
		papers = append(papers, ParsePaper(f.ID, header, body, opts...))
	}

	return content.Issue{
		Date:   date,
		Title:  DigestTitle(string(digest)),
		Digest: string(digest),
		Papers: papers,
	}, nil
}

// DigestTitle 从导读文本里宽松地匹配 title 字段。
func DigestTitle(digest string) string {
	if m := digestTitleRe.FindStringSubmatch(digest); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func DefaultTitle(date string) string {
	return "AI Daily " + date
}

// normalizeIssue 是快照和原始解析两条路径共用的归一化步骤。
// id 为空的条目无法寻址，直接丢弃并返回丢弃数量。
func normalizeIssue(is content.Issue, date string) (content.Issue, int) {
	is.Date = date
	is.Title = strings.TrimSpace(is.Title)
	if is.Title == "" {
		is.Title = DefaultTitle(date)
	}
	papers := make([]content.Item, 0, len(is.Papers))
	dropped := 0
	for _, p := range is.Papers {
		p.Normalize()
		if p.ID == "" {
			dropped++
			continue
		}
		papers = append(papers, p)
	}
	is.Papers = papers
	return is, dropped
}
