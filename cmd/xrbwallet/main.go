// Package main is the entry point for the xrbwallet CLI.
package main

import (
	"os"

	"github.com/mrz1836/xrbwallet/internal/cli"
)

// Set by the linker: -X main.version=v1.0.0 -X main.commit=... -X main.date=...
//
//nolint:gochecknoglobals // Link-time build metadata
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
