package cli

import (
	"errors"

	"github.com/gtrak/hashline-tools/internal/hashline"
)

// Exit codes of the hashline-tools binary.
const (
	ExitOK         = 0
	ExitUnexpected = 1
	ExitUsage      = 2
	ExitStale      = 3
	ExitIO         = 4
)

// ExitCode maps an error from a command run to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	switch hashline.KindOf(err) {
	case hashline.KindHashMismatch, hashline.KindAnchorOutOfRange, hashline.KindOverlappingEdits:
		return ExitStale
	case hashline.KindInvalidAnchorSyntax, hashline.KindInvalidEditShape, hashline.KindEmptyEditBatch:
		return ExitUsage
	case hashline.KindIO, hashline.KindEncoding:
		return ExitIO
	}
	return ExitUnexpected
}
