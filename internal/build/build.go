package build

import (
	"context"
	domainbuild "dailydigest/internal/domain/build"
	"dailydigest/internal/domain/config"
	"dailydigest/internal/domain/content"
	domainerr "dailydigest/internal/domain/errors"
	"dailydigest/internal/domain/site"
	"dailydigest/internal/ingest"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const SchemaVersion = "2.0"

// Builder 从原始文件重新生成每一期的 issue-data.json 结构化快照。
type Builder struct {
	Cfg config.Config
}

type Result struct {
	Written  []string
	Skipped  []string
	Warnings []ingest.Warning
}

type snapshotFile struct {
	content.Issue
	GeneratedAt   string `json:"generated_at"`
	SchemaVersion string `json:"schema_version"`
	SourceHash    string `json:"source_hash"`
}

// Run 为 date 指定的一期（为空时为全部期）写快照。源文件指纹未变化的期会被跳过。
func (b *Builder) Run(ctx context.Context, date string, force bool) (*Result, error) {
	res := ingest.NewResolver(b.Cfg.Build.IssuesDir)

	var dates []string
	if date != "" {
		if !site.IsDate(date) {
			return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domainerr.ErrInvalid, date)
		}
		dates = []string{date}
	} else {
		all, err := res.Dates()
		if err != nil {
			return nil, fmt.Errorf("discover issues: %w", err)
		}
		dates = all
	}

	out := &Result{}
	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		is, err := res.LoadRaw(d)
		if err != nil {
			return out, fmt.Errorf("load issue %s: %w", d, err)
		}
		if len(is.Papers) == 0 {
			out.Warnings = append(out.Warnings, ingest.Warning{Path: res.IssueDir(d), Msg: "issue has no papers"})
		}

		fp, err := fingerprint(res.IssueDir(d), is)
		if err != nil {
			return out, fmt.Errorf("fingerprint %s: %w", d, err)
		}
		path := filepath.Join(res.IssueDir(d), ingest.SnapshotFile)
		if !force && existingHash(path) == fp.SourceHash {
			out.Skipped = append(out.Skipped, d)
			continue
		}

		doc := snapshotFile{
			Issue:         is,
			GeneratedAt:   b.now().UTC().Format(time.RFC3339),
			SchemaVersion: SchemaVersion,
			SourceHash:    fp.SourceHash,
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return out, err
		}
		if err := writeFileAtomic(path, append(data, '\n')); err != nil {
			return out, fmt.Errorf("write snapshot %s: %w", d, err)
		}
		out.Written = append(out.Written, d)
	}
	return out, nil
}

func (b *Builder) now() time.Time {
	if !b.Cfg.Build.Now.IsZero() {
		return b.Cfg.Build.Now
	}
	return time.Now()
}

func fingerprint(issueDir string, is content.Issue) (domainbuild.Fingerprint, error) {
	fp := domainbuild.Fingerprint{PaperHash: make(map[string]string, len(is.Papers))}

	digest, err := os.ReadFile(filepath.Join(issueDir, ingest.DigestFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fp, err
	}
	fp.DigestHash = domainbuild.HashBytes(digest)

	files, err := ingest.DiscoverPapers(issueDir)
	if err != nil {
		return fp, err
	}
	for _, f := range files {
		raw, err := os.ReadFile(f.Path)
		if err != nil {
			return fp, err
		}
		it, _ := is.Find(f.ID)
		fp.PaperHash[f.ID] = domainbuild.HashBytes(append(raw, []byte("\x00"+it.Image)...))
	}
	fp.ComputeSourceHash()
	return fp, nil
}

func existingHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc struct {
		SourceHash string `json:"source_hash"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.SourceHash
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".issue-data-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
