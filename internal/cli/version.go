package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo is version metadata set at link time.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

//nolint:gochecknoglobals // Set once from main
var buildInfo BuildInfo

// SetBuildInfo records version metadata for the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data := map[string]string{
			"version": orDefault(buildInfo.Version, "dev"),
			"commit":  orDefault(buildInfo.Commit, "unknown"),
			"date":    orDefault(buildInfo.Date, "unknown"),
			"go":      runtime.Version(),
		}
		return emit(cmd, data, func(w io.Writer) {
			out(w, "xrbwallet %s\n", formatVersion(buildInfo))
		})
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
}

// formatVersion renders info as "v1.2.3 (commit: abc1234, built: 2024-01-15)".
func formatVersion(info BuildInfo) string {
	return fmt.Sprintf("%s (commit: %s, built: %s)",
		orDefault(info.Version, "dev"),
		orDefault(info.Commit, "unknown"),
		orDefault(info.Date, "unknown"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
