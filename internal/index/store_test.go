package index

import (
	"errors"
	"path/filepath"
	"testing"

	"dailydigest/internal/domain/content"
	domainerr "dailydigest/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "sub", "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleIssues() []content.Issue {
	return []content.Issue{
		{Date: "2026-02-10", Title: "Ten", Papers: []content.Item{
			{ID: "a", Title: "A", Tags: []string{"RL", "moe"}},
		}},
		{Date: "2026-02-12", Title: "Twelve", Papers: []content.Item{
			{ID: "b", Title: "B", Tags: []string{"rl"}},
			{ID: "c", Title: "C", Tags: []string{"rl", "agent"}},
		}},
		{Date: "2026-01-31", Title: "Jan"},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(OpenOptions{})
	require.Error(t, err)
}

func TestRebuildAndQuery(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(sampleIssues()))

	dates, err := st.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-12", "2026-02-10", "2026-01-31"}, dates)

	page, err := st.ListIssues(ListOptions{Page: 2, Size: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Ten", page[0].Title)

	is, err := st.GetIssue("2026-02-12")
	require.NoError(t, err)
	assert.Len(t, is.Papers, 2)

	it, err := st.GetItem("2026-02-12", "c")
	require.NoError(t, err)
	assert.Equal(t, "C", it.Title)
}

func TestNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetIssue("2026-02-12")
	assert.True(t, errors.Is(err, domainerr.ErrNotFound))

	require.NoError(t, st.Rebuild(sampleIssues()))
	_, err = st.GetIssue("2026-02-11")
	assert.True(t, errors.Is(err, domainerr.ErrNotFound))
	_, err = st.GetItem("2026-02-12", "a")
	assert.True(t, errors.Is(err, domainerr.ErrNotFound))
	_, err = st.GetItem("", "")
	assert.True(t, errors.Is(err, domainerr.ErrNotFound))
}

func TestListByTagOrder(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(sampleIssues()))

	hits, err := st.ListByTag("RL")
	require.NoError(t, err)
	var got []string
	for _, h := range hits {
		got = append(got, h.Date+"/"+h.Item.ID)
	}
	assert.Equal(t, []string{"2026-02-12/b", "2026-02-12/c", "2026-02-10/a"}, got)

	hits, err = st.ListByTag("missing")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestListTags(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(sampleIssues()))

	stats, err := st.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []TagStat{{"rl", 3}, {"agent", 1}, {"moe", 1}}, stats)
}

func TestRebuildReplacesPreviousSnapshot(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(sampleIssues()))
	require.NoError(t, st.Rebuild([]content.Issue{{Date: "2026-03-01", Title: "New"}}))

	dates, err := st.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-01"}, dates)

	hits, err := st.ListByTag("rl")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTagKeyRoundTrip(t *testing.T) {
	k := makeTagKey("2026-02-12", 3, "2602.01234")
	date, id, ok := parseTagKey(k)
	assert.True(t, ok)
	assert.Equal(t, "2026-02-12", date)
	assert.Equal(t, "2602.01234", id)

	assert.Less(t, string(makeTagKey("2026-02-12", 0, "x")), string(makeTagKey("2026-02-10", 0, "x")))
	assert.Less(t, string(makeTagKey("2026-02-12", 1, "z")), string(makeTagKey("2026-02-12", 2, "a")))

	_, _, ok = parseTagKey([]byte("nozero"))
	assert.False(t, ok)
}
