package ingest

import (
	"dailydigest/internal/domain/content"
	"runtime"
	"sort"
	"sync"
)

type Warning struct {
	Path string
	Msg  string
}

type Result struct {
	Issue  content.Issue
	Source SnapshotStatus
	Warns  []Warning
	Err    error
}

// LoadAll 并发解析全部期，结果按日期降序排列。快照失效只记录为警告。
func (r *Resolver) LoadAll() ([]Result, []Warning, error) {
	dates, err := r.Dates()
	if err != nil {
		return nil, nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(dates) {
		workers = len(dates)
	}
	jobs := make(chan string)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for date := range jobs {
				rs, err := r.resolve(date)
				if err != nil {
					results <- Result{Err: err}
					continue
				}
				is, snap := rs.Issue, rs.Snap
				var warns []Warning
				dir := r.IssueDir(date)
				if snap.Status == SnapshotInvalid {
					warns = append(warns, Warning{
						Path: dir,
						Msg:  "structured snapshot ignored: " + snap.Reason,
					})
				}
				for i := 0; i < rs.Dropped; i++ {
					warns = append(warns, Warning{Path: dir, Msg: "item without id dropped"})
				}
				if len(is.Papers) == 0 {
					warns = append(warns, Warning{Path: dir, Msg: "issue has no papers"})
				}
				results <- Result{Issue: is, Source: snap.Status, Warns: warns}
			}
		}()
	}

	go func() {
		for _, d := range dates {
			jobs <- d
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var out []Result
	var warns []Warning
	var firstErr error
	for res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		warns = append(warns, res.Warns...)
		out = append(out, res)
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Issue.Date > out[j].Issue.Date
	})
	sort.SliceStable(warns, func(i, j int) bool {
		return warns[i].Path > warns[j].Path
	})
	return out, warns, nil
}
