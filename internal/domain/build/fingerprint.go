package build

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Fingerprint 记录一期源文件的内容哈希，用于判断快照是否需要重写。
type Fingerprint struct {
	DigestHash string
	PaperHash  map[string]string
	SourceHash string
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (f *Fingerprint) ComputeSourceHash() {
	ids := make([]string, 0, len(f.PaperHash))
	for id := range f.PaperHash {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	h.Write([]byte(f.DigestHash))
	for _, id := range ids {
		h.Write([]byte{0})
		h.Write([]byte(id))
		h.Write([]byte{0})
		h.Write([]byte(f.PaperHash[id]))
	}
	f.SourceHash = hex.EncodeToString(h.Sum(nil))
}
