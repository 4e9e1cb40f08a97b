package index

import (
	"dailydigest/internal/domain/content"
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"strings"
)

// Rebuild 在一个事务里丢弃旧索引并写入全部期。
func (s *Store) Rebuild(issues []content.Issue) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bIssues, bItems, bIdxTag} {
			if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}

		issuesB, err := tx.CreateBucket(bIssues)
		if err != nil {
			return err
		}
		itemsB, err := tx.CreateBucket(bItems)
		if err != nil {
			return err
		}
		idxTagB, err := tx.CreateBucket(bIdxTag)
		if err != nil {
			return err
		}

		for _, is := range issues {
			if strings.TrimSpace(is.Date) == "" {
				continue
			}
			ib, err := json.Marshal(is)
			if err != nil {
				return err
			}
			if err := issuesB.Put([]byte(is.Date), ib); err != nil {
				return err
			}

			for seq, it := range is.Papers {
				if strings.TrimSpace(it.ID) == "" {
					continue
				}
				b, err := json.Marshal(it)
				if err != nil {
					return err
				}
				if err := itemsB.Put(itemKey(is.Date, it.ID), b); err != nil {
					return err
				}

				for _, tag := range it.Tags {
					tag = strings.ToLower(strings.TrimSpace(tag))
					if tag == "" {
						continue
					}
					sb, err := idxTagB.CreateBucketIfNotExists([]byte(tag))
					if err != nil {
						return err
					}
					if err := sb.Put(makeTagKey(is.Date, seq, it.ID), []byte{1}); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}
