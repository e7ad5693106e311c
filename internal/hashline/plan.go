package hashline

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeKind classifies what an edit did to the buffer.
type ChangeKind int

const (
	ChangeInserted ChangeKind = iota
	ChangeDeleted
	ChangeReplaced
)

// Ordering priority at a shared boundary: a prepend-before-k comes before a
// replace-at-k comes before an append-after-(k-1).
const (
	prioPrepend = 0
	prioReplace = 1
	prioAppend  = 2
)

// plannedEdit is one resolved edit: a half-open [Start, End) interval of
// 1-indexed positions in the original buffer, plus replacement content.
// Start == End marks a pure insertion at that point.
type plannedEdit struct {
	Start, End int
	Lines      []string
	Kind       ChangeKind
	priority   int
	index      int
}

// Plan is a frozen, conflict-free, deterministically ordered edit list
// ready for the applier.
type Plan struct {
	edits []plannedEdit
}

// BuildPlan resolves every edit's anchors against the current buffer,
// derives target intervals, orders them, and rejects conflicts. The write
// op never reaches a plan; callers handle it at the file level.
func BuildPlan(lines []Line, edits []Edit) (*Plan, error) {
	hashes := LineHashes(lines)
	total := len(lines)

	resolve := func(a *Anchor) error {
		if a.Line < 1 || a.Line > total {
			return &AnchorRangeError{Line: a.Line, Total: total}
		}
		if current := hashes[a.Line-1]; current != a.Hash {
			return &HashMismatchError{
				Anchor:  *a,
				Current: current,
				Snippet: neighborSnippet(lines, hashes, a.Line),
			}
		}
		return nil
	}

	planned := make([]plannedEdit, 0, len(edits))
	for i, e := range edits {
		if e.Op == OpWrite {
			return nil, &ShapeError{Index: i, Reason: "\"write\" cannot be planned as a line edit"}
		}
		for _, a := range []*Anchor{e.Pos, e.End} {
			if a == nil {
				continue
			}
			if err := resolve(a); err != nil {
				return nil, err
			}
		}

		p := plannedEdit{Lines: e.Lines, index: i}
		switch e.Op {
		case OpReplace, OpDelete:
			p.priority = prioReplace
			p.Start = e.Pos.Line
			p.End = e.Pos.Line + 1
			if e.End != nil {
				if e.End.Line < e.Pos.Line {
					return nil, &ShapeError{Index: i, Reason: fmt.Sprintf("\"end\" line %d is before \"pos\" line %d", e.End.Line, e.Pos.Line)}
				}
				p.End = e.End.Line + 1
			}
			if len(p.Lines) == 0 {
				p.Kind = ChangeDeleted
				p.Lines = nil
			} else {
				p.Kind = ChangeReplaced
			}
		case OpAppend:
			p.priority = prioAppend
			p.Kind = ChangeInserted
			point := total + 1
			if e.Pos != nil {
				point = e.Pos.Line + 1
			}
			p.Start, p.End = point, point
		case OpPrepend:
			p.priority = prioPrepend
			p.Kind = ChangeInserted
			point := 1
			if e.Pos != nil {
				point = e.Pos.Line
			}
			p.Start, p.End = point, point
		}
		planned = append(planned, p)
	}

	sort.SliceStable(planned, func(a, b int) bool {
		pa, pb := planned[a], planned[b]
		if pa.Start != pb.Start {
			return pa.Start < pb.Start
		}
		if pa.priority != pb.priority {
			return pa.priority < pb.priority
		}
		return pa.index < pb.index
	})

	if err := checkOverlap(planned); err != nil {
		return nil, err
	}
	return &Plan{edits: planned}, nil
}

// checkOverlap rejects intersecting half-open intervals and insertion points
// that fall strictly inside a replace/delete range. Insertions sharing a
// point are fine; they concatenate in request order.
func checkOverlap(planned []plannedEdit) error {
	var last *plannedEdit // last non-insertion seen, in sorted order
	for i := range planned {
		p := &planned[i]
		if p.Start == p.End {
			if last != nil && p.Start > last.Start && p.Start < last.End {
				return &OverlapError{
					FirstStart:  last.Start,
					FirstEnd:    last.End - 1,
					SecondStart: p.Start,
					SecondEnd:   p.Start,
				}
			}
			continue
		}
		if last != nil && p.Start < last.End {
			return &OverlapError{
				FirstStart:  last.Start,
				FirstEnd:    last.End - 1,
				SecondStart: p.Start,
				SecondEnd:   p.End - 1,
			}
		}
		last = p
	}
	return nil
}

// neighborSnippet renders the anchor's +-2 neighborhood with current hashes,
// one "N#HH:content" row per line.
func neighborSnippet(lines []Line, hashes []string, n int) string {
	lo := n - 2
	if lo < 1 {
		lo = 1
	}
	hi := n + 2
	if hi > len(lines) {
		hi = len(lines)
	}
	var b strings.Builder
	for i := lo; i <= hi; i++ {
		fmt.Fprintf(&b, "%d#%s:%s\n", i, hashes[i-1], lines[i-1].Content)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
