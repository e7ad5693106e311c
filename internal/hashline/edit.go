package hashline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Edit operation names, as they appear in the batch JSON "op" field.
const (
	OpReplace = "replace"
	OpAppend  = "append"
	OpPrepend = "prepend"
	OpDelete  = "delete"
	OpWrite   = "write"
)

// Edit is one decoded, shape-validated operation from an edit batch.
// Anchors are syntactically valid but not yet resolved against a buffer.
type Edit struct {
	Op      string
	Pos     *Anchor
	End     *Anchor
	Lines   []string
	Content string // write only
}

type rawEdit struct {
	Op      *string      `json:"op"`
	Pos     *anchorField `json:"pos"`
	End     *anchorField `json:"end"`
	Lines   []string     `json:"lines"`
	Content *string      `json:"content"`
}

// DecodeEdits parses and shape-validates an edit batch. A "write" op must be
// the only operation in its batch.
func DecodeEdits(data []byte) ([]Edit, error) {
	var raw []rawEdit
	if err := json.Unmarshal(data, &raw); err != nil {
		if ke := KindOf(err); ke == KindInvalidAnchorSyntax {
			return nil, err
		}
		return nil, &ShapeError{Index: -1, Reason: err.Error()}
	}
	if len(raw) == 0 {
		return nil, &EmptyBatchError{}
	}

	edits := make([]Edit, 0, len(raw))
	for i, r := range raw {
		e, err := validateEdit(i, r)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}

	for i, e := range edits {
		if e.Op == OpWrite && len(edits) > 1 {
			return nil, &ShapeError{Index: i, Reason: "\"write\" must be the only operation in the batch"}
		}
	}
	return edits, nil
}

func validateEdit(i int, r rawEdit) (Edit, error) {
	if r.Op == nil {
		return Edit{}, &ShapeError{Index: i, Reason: "missing \"op\" field"}
	}
	e := Edit{Op: *r.Op, Lines: r.Lines}
	if r.Pos != nil {
		a := r.Pos.Anchor
		e.Pos = &a
	}
	if r.End != nil {
		a := r.End.Anchor
		e.End = &a
	}
	if r.Content != nil {
		e.Content = *r.Content
	}

	requireLines := func() error {
		if r.Lines == nil {
			return &ShapeError{Index: i, Reason: fmt.Sprintf("%q requires a \"lines\" array", e.Op)}
		}
		for _, s := range r.Lines {
			if strings.ContainsAny(s, "\r\n") {
				return &ShapeError{Index: i, Reason: "\"lines\" entries must not contain line breaks"}
			}
		}
		return nil
	}

	switch e.Op {
	case OpReplace:
		if e.Pos == nil {
			return Edit{}, &ShapeError{Index: i, Reason: "\"replace\" requires \"pos\""}
		}
		if err := requireLines(); err != nil {
			return Edit{}, err
		}
	case OpDelete:
		if e.Pos == nil {
			return Edit{}, &ShapeError{Index: i, Reason: "\"delete\" requires \"pos\""}
		}
		if r.Lines != nil {
			return Edit{}, &ShapeError{Index: i, Reason: "\"delete\" does not take \"lines\""}
		}
	case OpAppend, OpPrepend:
		if e.End != nil {
			return Edit{}, &ShapeError{Index: i, Reason: fmt.Sprintf("%q does not take \"end\"", e.Op)}
		}
		if err := requireLines(); err != nil {
			return Edit{}, err
		}
	case OpWrite:
		if r.Content == nil {
			return Edit{}, &ShapeError{Index: i, Reason: "\"write\" requires \"content\""}
		}
		if e.Pos != nil || e.End != nil || r.Lines != nil {
			return Edit{}, &ShapeError{Index: i, Reason: "\"write\" takes only \"content\""}
		}
	default:
		return Edit{}, &ShapeError{Index: i, Reason: fmt.Sprintf("unknown op %q", e.Op)}
	}

	if e.End != nil && e.Pos == nil {
		return Edit{}, &ShapeError{Index: i, Reason: "\"end\" requires \"pos\""}
	}
	return e, nil
}
