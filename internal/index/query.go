package index

import (
	"dailydigest/internal/domain/content"
	domainerr "dailydigest/internal/domain/errors"
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"sort"
	"strings"
)

type ListOptions struct {
	Page int
	Size int
}

type TagHit struct {
	Date string
	Item content.Item
}

type TagStat struct {
	Name  string
	Count int
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 1000 {
		size = 1000
	}
	return page, size
}

// Dates 返回索引中的全部期号，最新的在前。
func (s *Store) Dates() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bIssues)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			out = append(out, string(k))
		}
		return nil
	})
	return out, err
}

// ListIssues 按日期降序分页列出期。
func (s *Store) ListIssues(opt ListOptions) ([]content.Issue, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.Issue
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bIssues)
		if b == nil {
			return nil
		}
		skip := (opt.Page - 1) * opt.Size
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if skip > 0 {
				skip--
				continue
			}
			var is content.Issue
			if err := json.Unmarshal(v, &is); err != nil {
				continue
			}
			out = append(out, is)
			if len(out) >= opt.Size {
				break
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) GetIssue(date string) (content.Issue, error) {
	date = strings.TrimSpace(date)
	nf := domainerr.NotFoundError{Kind: "issue", Key: date}
	var is content.Issue
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bIssues)
		if b == nil {
			return nf
		}
		v := b.Get([]byte(date))
		if v == nil {
			return nf
		}
		return json.Unmarshal(v, &is)
	})
	return is, err
}

func (s *Store) GetItem(date, id string) (content.Item, error) {
	nf := domainerr.NotFoundError{Kind: "item", Key: date + "/" + id}
	if strings.TrimSpace(date) == "" || strings.TrimSpace(id) == "" {
		return content.Item{}, nf
	}
	var it content.Item
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bItems)
		if b == nil {
			return nf
		}
		v := b.Get(itemKey(date, id))
		if v == nil {
			return nf
		}
		return json.Unmarshal(v, &it)
	})
	return it, err
}

// ListByTag 返回带有该标签的条目，按期号降序、期内原始顺序。
func (s *Store) ListByTag(tag string) ([]TagHit, error) {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if tag == "" {
		return nil, nil
	}
	var out []TagHit
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bIdxTag)
		itemsB := tx.Bucket(bItems)
		if parent == nil || itemsB == nil {
			return nil
		}
		sb := parent.Bucket([]byte(tag))
		if sb == nil {
			return nil
		}
		c := sb.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			date, id, ok := parseTagKey(k)
			if !ok {
				continue
			}
			v := itemsB.Get(itemKey(date, id))
			if v == nil {
				continue
			}
			var it content.Item
			if err := json.Unmarshal(v, &it); err != nil {
				continue
			}
			out = append(out, TagHit{Date: date, Item: it})
		}
		return nil
	})
	return out, err
}

// ListTags 统计全部标签，按数量降序，数量相同按名字排序。
func (s *Store) ListTags() ([]TagStat, error) {
	var stats []TagStat
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bIdxTag)
		if parent == nil {
			return nil
		}
		return parent.ForEachBucket(func(k []byte) error {
			n := 0
			c := parent.Bucket(k).Cursor()
			for ck, _ := c.First(); ck != nil; ck, _ = c.Next() {
				n++
			}
			stats = append(stats, TagStat{Name: string(k), Count: n})
			return nil
		})
	})
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].Count > stats[j].Count
	})
	return stats, err
}
