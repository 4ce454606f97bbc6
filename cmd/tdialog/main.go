// Package main is the entry point for the tdialog CLI application.
package main

import (
	"os"

	"github.com/andri/tdialog/cmd/tdialog/commands"
)

// These variables are set at build time via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, buildDate)
	os.Exit(commands.Execute())
}
