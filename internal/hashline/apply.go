package hashline

// Change records where an applied edit landed. Old* is the half-open
// pre-edit interval it consumed; New* is the half-open post-edit interval
// its replacement lines occupy (empty for pure deletions). Deleted holds the
// removed pre-edit lines for the diff emitter.
type Change struct {
	Kind     ChangeKind
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int
	Deleted  []Line
}

// Apply executes a frozen plan against the original buffer and returns the
// new buffer plus the change map, ascending by post-edit position.
//
// At a shared boundary the appends emit first (they attach to the preceding
// line), then the prepends (they attach to the following content), then the
// replacement of that following content.
func Apply(lines []Line, plan *Plan) ([]Line, []Change) {
	out := make([]Line, 0, len(lines))
	changes := make([]Change, 0, len(plan.edits))
	cur := 1 // next unconsumed original line

	emit := func(p plannedEdit) {
		deleted := lines[p.Start-1 : p.End-1]
		ch := Change{
			Kind:     p.Kind,
			OldStart: p.Start,
			OldEnd:   p.End,
			NewStart: len(out) + 1,
			Deleted:  deleted,
		}
		for j, content := range p.Lines {
			out = append(out, Line{Content: content, Term: replacementTerm(out, lines, deleted, p, j)})
		}
		ch.NewEnd = len(out) + 1
		changes = append(changes, ch)
	}

	i := 0
	for i < len(plan.edits) {
		start := plan.edits[i].Start
		j := i
		for j < len(plan.edits) && plan.edits[j].Start == start {
			j++
		}
		group := plan.edits[i:j]
		i = j

		for cur < start {
			out = append(out, lines[cur-1])
			cur++
		}
		for _, prio := range []int{prioAppend, prioPrepend, prioReplace} {
			for _, p := range group {
				if p.priority != prio {
					continue
				}
				emit(p)
				if p.End > cur {
					cur = p.End
				}
			}
		}
	}
	for cur <= len(lines) {
		out = append(out, lines[cur-1])
		cur++
	}

	// Every line except the last must carry a real terminator.
	for k := 0; k < len(out)-1; k++ {
		if out[k].Term == TermNone {
			out[k].Term = TermLF
		}
	}
	return out, changes
}

// replacementTerm picks the terminator for the j-th replacement line:
// positionally from the replaced range, else from the range's last line;
// insertions inherit the predecessor's style (the successor's at BOF),
// falling back to LF.
func replacementTerm(out, lines, deleted []Line, p plannedEdit, j int) Terminator {
	if len(deleted) > 0 {
		if j < len(deleted) {
			return deleted[j].Term
		}
		return deleted[len(deleted)-1].Term
	}
	if len(out) > 0 {
		return out[len(out)-1].Term
	}
	if p.Start >= 1 && p.Start <= len(lines) {
		return lines[p.Start-1].Term
	}
	return TermLF
}
