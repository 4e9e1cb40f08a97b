package index

var (
	bIssues = []byte("issues")  // date -> issueBytes
	bItems  = []byte("items")   // date 0x00 id -> itemBytes
	bIdxTag = []byte("idx_tag") // lower(tag) -> sub-bucket(invDate + seq + id)
)
