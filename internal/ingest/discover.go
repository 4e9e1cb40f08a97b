package ingest

import (
	"dailydigest/internal/domain/site"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	SnapshotFile  = "issue-data.json"
	DigestFile    = "digest.md"
	XSnapshotFile = "x-snapshot.md"
	PapersDir     = "papers"
	FiguresDir    = "assets/figures"
	paperPattern  = "*.md"
)

type SourceFile struct {
	ID   string
	Path string
}

// DiscoverDates 列出 root 下名字符合 YYYY-MM-DD 的目录，按字符串降序。
func DiscoverDates(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var dates []string
	for _, e := range entries {
		if !e.IsDir() || !site.IsDate(e.Name()) {
			continue
		}
		dates = append(dates, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// DiscoverPapers 按文件名顺序列出一期的论文文档。
func DiscoverPapers(issueDir string) ([]SourceFile, error) {
	dir := filepath.Join(issueDir, PapersDir)
	matches, err := doublestar.Glob(os.DirFS(dir), paperPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	out := make([]SourceFile, 0, len(matches))
	for _, m := range matches {
		out = append(out, SourceFile{ID: PaperID(m), Path: filepath.Join(dir, m)})
	}
	return out, nil
}

// FigureName 返回图片目录中第一个以 "<id>." 开头的文件名，没有则返回空串。
func FigureName(issueDir, id string) string {
	entries, err := os.ReadDir(filepath.Join(issueDir, FiguresDir))
	if err != nil {
		return ""
	}
	prefix := id + "."
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			return e.Name()
		}
	}
	return ""
}
