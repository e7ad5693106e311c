package hashline

import (
	"fmt"
	"strings"
)

const (
	diffContext  = 5
	diffMergeGap = 10
)

// StaleNote closes every successful edit response. The wording is part of
// the agent interface; do not reword it.
const StaleNote = "Note: Lines after edited regions have stale hashes. Use hashread to refresh."

// FirstChangeLine returns the first affected line number in the post-edit
// buffer, clamped into it.
func FirstChangeLine(changes []Change, newTotal int) int {
	if len(changes) == 0 {
		return 1
	}
	n := changes[0].NewStart
	if n > newTotal {
		n = newTotal
	}
	if n < 1 {
		n = 1
	}
	return n
}

// diffRegion is a run of changes close enough to share one hunk, with its
// inclusive post-edit anchor span.
type diffRegion struct {
	changes []Change
	first   int
	last    int
}

// RenderDiff produces the hash-anchored unified diff for an applied edit:
// the <diff> envelope with two path header lines, one hunk per change
// region with up to 5 context lines each side, regions farther than 10
// lines apart separated by a "..." gap marker, and the stale-hash notice
// after the envelope.
//
// Context and inserted rows carry fresh post-edit hashes, so every anchor
// shown (other than deletion rows) is valid against the file on disk.
// Deleted rows carry their pre-edit line number and the reserved two-space
// hash.
func RenderDiff(path string, newLines []Line, changes []Change) string {
	newHashes := LineHashes(newLines)
	regions := groupRegions(changes, len(newLines))

	var b strings.Builder
	b.WriteString("<diff>\n")
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", path, path)
	for ri, rg := range regions {
		if ri > 0 {
			b.WriteString("...\n")
		}
		renderRegion(&b, rg, newLines, newHashes)
	}
	b.WriteString("</diff>\n")
	b.WriteString(StaleNote + "\n")
	return b.String()
}

func groupRegions(changes []Change, newTotal int) []diffRegion {
	var regions []diffRegion
	for _, ch := range changes {
		if len(ch.Deleted) == 0 && ch.NewEnd == ch.NewStart {
			continue // nothing to show
		}
		first := ch.NewStart
		last := ch.NewEnd - 1
		if last < first {
			last = first - 1 // pure deletion: anchor on the seam
		}
		if len(regions) > 0 && first-regions[len(regions)-1].last <= diffMergeGap {
			rg := &regions[len(regions)-1]
			rg.changes = append(rg.changes, ch)
			if last > rg.last {
				rg.last = last
			}
			continue
		}
		regions = append(regions, diffRegion{changes: []Change{ch}, first: first, last: last})
	}
	return regions
}

func renderRegion(b *strings.Builder, rg diffRegion, newLines []Line, newHashes []string) {
	ctxStart := rg.first - diffContext
	if ctxStart < 1 {
		ctxStart = 1
	}
	ctxEnd := rg.last + diffContext
	if ctxEnd > len(newLines) {
		ctxEnd = len(newLines)
	}

	pos := ctxStart
	ci := 0
	for pos <= ctxEnd || ci < len(rg.changes) {
		if ci < len(rg.changes) && rg.changes[ci].NewStart == pos {
			ch := rg.changes[ci]
			for j, dl := range ch.Deleted {
				fmt.Fprintf(b, "-%d#%s:%s\n", ch.OldStart+j, DeletedHash, dl.Content)
			}
			for ; pos < ch.NewEnd; pos++ {
				fmt.Fprintf(b, "+%d#%s:%s\n", pos, newHashes[pos-1], newLines[pos-1].Content)
			}
			ci++
			continue
		}
		if pos > ctxEnd {
			break
		}
		fmt.Fprintf(b, " %d#%s:%s\n", pos, newHashes[pos-1], newLines[pos-1].Content)
		pos++
	}
}
