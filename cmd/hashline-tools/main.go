package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gtrak/hashline-tools/internal/cli"
)

var version = "0.1.0-dev"

// buildCommit is set via -ldflags or falls back to VCS info from debug.ReadBuildInfo.
var buildCommit string

// getBuildCommit returns the short commit hash, resolving from VCS build info if needed.
func getBuildCommit() string {
	if buildCommit != "" {
		return buildCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return setting.Value[:7]
		}
	}
	return ""
}

func versionString() string {
	if commit := getBuildCommit(); commit != "" {
		return version + " (" + commit + ")"
	}
	return version
}

func main() {
	if err := cli.NewRootCommand(versionString()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hashline-tools: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
