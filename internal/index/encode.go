package index

import (
	"bytes"
	"encoding/binary"
)

// invertDate 把 YYYY-MM-DD 的每个数字取反，使游标升序遍历即为日期降序。
func invertDate(date string) []byte {
	out := []byte(date)
	for i, c := range out {
		if c >= '0' && c <= '9' {
			out[i] = '9' - (c - '0')
		}
	}
	return out
}

func itemKey(date, id string) []byte {
	buf := make([]byte, 0, len(date)+1+len(id))
	buf = append(buf, date...)
	buf = append(buf, 0x00)
	buf = append(buf, id...)
	return buf
}

// key = invDate(10) + 0x00 + seq(2) + id
func makeTagKey(date string, seq int, id string) []byte {
	buf := make([]byte, 0, len(date)+1+2+len(id))
	buf = append(buf, invertDate(date)...)
	buf = append(buf, 0x00)

	tmp2 := make([]byte, 2)
	binary.BigEndian.PutUint16(tmp2, clampSeq(seq))
	buf = append(buf, tmp2...)

	buf = append(buf, id...)
	return buf
}

func parseTagKey(k []byte) (date, id string, ok bool) {
	i := bytes.IndexByte(k, 0x00)
	if i < 0 || len(k) < i+1+2+1 {
		return "", "", false
	}
	// invertDate 是自反的
	return string(invertDate(string(k[:i]))), string(k[i+3:]), true
}

func clampSeq(s int) uint16 {
	if s < 0 {
		return 0
	}
	if s > 0xffff {
		return 0xffff
	}
	return uint16(s)
}
