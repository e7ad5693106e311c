package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gtrak/hashline-tools/internal/config"
	"github.com/gtrak/hashline-tools/internal/hashline"
	"github.com/gtrak/hashline-tools/internal/logging"
	"github.com/gtrak/hashline-tools/internal/token"
	"github.com/spf13/cobra"
)

var log = logging.Get()

// RunRead implements the read verb: file bytes -> line splitter -> listing
// renderer -> stdout. Stdout carries only the listing rows; notices and
// statistics go to stderr so the round-trip property holds.
func RunRead(cmd *cobra.Command, args []string) error {
	path := args[0]
	offset, _ := cmd.Flags().GetInt("offset")
	limit, _ := cmd.Flags().GetInt("limit")
	stats, _ := cmd.Flags().GetBool("stats")

	if offset < 0 {
		return &UsageError{Err: fmt.Errorf("--offset must not be negative, got %d", offset)}
	}
	if limit < 0 {
		return &UsageError{Err: fmt.Errorf("--limit must not be negative, got %d", limit)}
	}

	cfg := loadConfig()
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	log.Command("read", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return &hashline.IOError{Op: "read", Path: path, Err: err}
	}
	lines, err := hashline.SplitLines(data)
	if err != nil {
		return err
	}

	out := hashline.RenderListing(lines, offset, limit)
	fmt.Fprint(cmd.OutOrStdout(), out)

	total := len(lines)
	shown := strings.Count(out, "\n")
	end := offset + shown
	if end < total {
		fmt.Fprintf(cmd.ErrOrStderr(), "(File has more lines. Use --offset to read beyond line %d.)\n", end)
	}

	if stats || *cfg.TokenStats {
		est := token.EstimateSimple(out)
		fmt.Fprintf(cmd.ErrOrStderr(), "(%d of %d lines, ~%d tokens)\n", shown, total, est)
		log.Debug("read %s: %d of %d lines, ~%d tokens", path, shown, total, est)
	}
	return nil
}

// loadConfig returns the user config, falling back to defaults when the
// file is absent or unreadable. A broken config must not block reads.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		if err != config.ErrNoConfig {
			log.Debug("config ignored: %v", err)
		}
		return config.Default()
	}
	return cfg
}
