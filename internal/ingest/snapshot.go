package ingest

import (
	"bytes"
	"dailydigest/internal/domain/content"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type SnapshotStatus int

const (
	SnapshotAbsent SnapshotStatus = iota
	SnapshotInvalid
	SnapshotHit
)

func (s SnapshotStatus) String() string {
	switch s {
	case SnapshotHit:
		return "hit"
	case SnapshotInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// SnapshotResult 是读取结构化快照的结果；只有 Status 为 SnapshotHit 时 Issue 有效。
type SnapshotResult struct {
	Status SnapshotStatus
	Issue  content.Issue
	Reason string
}

type snapshotDoc struct {
	Date   string          `json:"date"`
	Title  string          `json:"title"`
	Digest *string         `json:"digest"`
	Papers json.RawMessage `json:"papers"`
}

// LoadSnapshot 读取一期目录下的 issue-data.json。
func LoadSnapshot(issueDir, date string) SnapshotResult {
	raw, err := os.ReadFile(filepath.Join(issueDir, SnapshotFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SnapshotResult{Status: SnapshotAbsent}
		}
		return SnapshotResult{Status: SnapshotInvalid, Reason: err.Error()}
	}
	return DecodeSnapshot(raw, date)
}

// DecodeSnapshot 校验快照的形状：对象、date 非空且等于请求的日期、papers 为数组。
func DecodeSnapshot(raw []byte, date string) SnapshotResult {
	invalid := func(reason string) SnapshotResult {
		return SnapshotResult{Status: SnapshotInvalid, Reason: reason}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return invalid("not a json object")
	}
	var doc snapshotDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return invalid("decode: " + err.Error())
	}
	if strings.TrimSpace(doc.Date) == "" {
		return invalid("empty date")
	}
	if doc.Date != date {
		return invalid("date mismatch: " + doc.Date)
	}
	papersRaw := bytes.TrimSpace(doc.Papers)
	if len(papersRaw) == 0 || papersRaw[0] != '[' {
		return invalid("papers is not an array")
	}
	var papers []content.Item
	if err := json.Unmarshal(papersRaw, &papers); err != nil {
		return invalid("decode papers: " + err.Error())
	}

	is := content.Issue{
		Date:   doc.Date,
		Title:  doc.Title,
		Papers: papers,
	}
	if doc.Digest != nil {
		is.Digest = *doc.Digest
	}
	return SnapshotResult{Status: SnapshotHit, Issue: is}
}
