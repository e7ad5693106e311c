package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UsageError marks argument and flag problems so the exit-code mapping can
// distinguish them from unexpected failures.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hashline-tools",
		Short: "Hash-anchored file reading and editing for LLM agents",
		Long: `hashline-tools prints files as hash-anchored lines and applies
structured, anchor-verified edits.

Every line of a listing is tagged with a short content-derived hash.
An edit must cite the hash it saw; if the file has changed since, the
hashes no longer match and the edit is refused instead of corrupting
the file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	readCmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Print a file as hash-anchored LINE#HASH:content rows",
		Args:  exactArgs(1),
		RunE:  RunRead,
	}
	readCmd.Flags().Int("offset", 0, "0-indexed line to start at")
	readCmd.Flags().Int("limit", 0, "Maximum lines to emit (default from config, 2000)")
	readCmd.Flags().Bool("stats", false, "Print window and token statistics to stderr")

	editCmd := &cobra.Command{
		Use:   "edit <path>",
		Short: "Apply a JSON batch of anchor-verified edits to a file",
		Args:  exactArgs(1),
		RunE:  RunEdit,
	}
	editCmd.Flags().String("edits", "", "Edit batch as a JSON array")
	editCmd.Flags().Bool("edits-stdin", false, "Read the edit batch JSON from stdin")

	rootCmd.AddCommand(readCmd, editCmd)
	return rootCmd
}

// exactArgs is cobra.ExactArgs wrapped so violations classify as usage
// errors (exit 2) rather than unexpected ones.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{Err: fmt.Errorf("%s requires exactly %d argument(s), got %d", cmd.Name(), n, len(args))}
		}
		return nil
	}
}
