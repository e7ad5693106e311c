package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gtrak/hashline-tools/internal/hashline"
	"github.com/gtrak/hashline-tools/internal/token"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RunEdit implements the edit verb: decode the batch, resolve it against the
// current file, apply, write atomically, and print the hash-anchored diff.
// On any failure the file on disk is left untouched.
func RunEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	editsJSON, _ := cmd.Flags().GetString("edits")
	fromStdin, _ := cmd.Flags().GetBool("edits-stdin")

	if fromStdin == (editsJSON != "") {
		return &UsageError{Err: fmt.Errorf("exactly one of --edits or --edits-stdin is required")}
	}

	raw := []byte(editsJSON)
	if fromStdin {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(cmd.ErrOrStderr(), "(Reading edit batch from terminal; pipe JSON and press ctrl-d to finish.)")
		}
		var err error
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return &hashline.IOError{Op: "read edits from", Path: "stdin", Err: err}
		}
	}

	log.Command("edit", path)

	edits, err := hashline.DecodeEdits(raw)
	if err != nil {
		return err
	}

	if edits[0].Op == hashline.OpWrite {
		return runWrite(cmd, path, edits[0].Content)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &hashline.IOError{Op: "read", Path: path, Err: err}
	}
	lines, err := hashline.SplitLines(data)
	if err != nil {
		return err
	}

	plan, err := hashline.BuildPlan(lines, edits)
	if err != nil {
		return err
	}
	newLines, changes := hashline.Apply(lines, plan)

	newData := hashline.JoinLines(newLines)
	if bytes.Equal(newData, data) {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
		return nil
	}

	if err := writeFileAtomic(path, newData); err != nil {
		return err
	}

	first := hashline.FirstChangeLine(changes, len(newLines))
	diff := hashline.RenderDiff(path, newLines, changes)
	fmt.Fprintf(cmd.OutOrStdout(), "Edit applied successfully (first change at line %d).\n\n%s", first, diff)
	if log.Enabled() {
		log.Debug("edit %s: %d change(s), response ~%d tokens", path, len(changes), token.EstimateSimple(diff))
	}
	return nil
}

// runWrite handles the internal full-file rewrite op. It bypasses anchor
// resolution, may create the file, and reports a short summary instead of
// a diff.
func runWrite(cmd *cobra.Command, path, content string) error {
	data := []byte(content)
	lines, err := hashline.SplitLines(data)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Edit applied successfully (first change at line 1).\nWrote %s (%d lines).\n", path, len(lines))
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it over
// path, so readers see either the full old or full new content. The temp
// file is removed on any failure.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &hashline.IOError{Op: "create temp file in", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &hashline.IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &hashline.IOError{Op: "close", Path: tmpName, Err: err}
	}
	if fi, err := os.Stat(path); err == nil {
		os.Chmod(tmpName, fi.Mode())
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &hashline.IOError{Op: "rename temp file over", Path: path, Err: err}
	}
	return nil
}
