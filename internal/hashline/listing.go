package hashline

import (
	"fmt"
	"strings"
)

// DefaultLimit is the read window size when the caller does not specify one.
const DefaultLimit = 2000

// RenderListing emits the hash-anchored listing: one "N#HH:content" row per
// line, 1-indexed. offset is the 0-indexed line to start at, clamped to
// [0, total]; limit caps the rows emitted, clamped to what remains. Hashes
// are computed over the full cumulative prefix regardless of the window.
func RenderListing(lines []Line, offset, limit int) string {
	hashes := LineHashes(lines)
	total := len(lines)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	end := offset + limit
	if end > total {
		end = total
	}
	var b strings.Builder
	for i := offset; i < end; i++ {
		fmt.Fprintf(&b, "%d#%s:%s\n", i+1, hashes[i], lines[i].Content)
	}
	return b.String()
}
