package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// walkCommands visits every command in the tree depth-first.
func walkCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, sub := range cmd.Commands() {
		walkCommands(sub, fn)
	}
}

// enrichParentLong appends the list of available subcommands to a
// parent command's Long description. The root is left alone since cobra
// already lists its commands.
func enrichParentLong(cmd *cobra.Command) {
	if !cmd.HasSubCommands() || !cmd.HasParent() {
		return
	}

	var sb strings.Builder
	sb.WriteString(cmd.Long)
	sb.WriteString("\n\nSubcommands:\n")

	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			fmt.Fprintf(&sb, "  %-16s %s\n", sub.Name(), sub.Short)
		}
	}

	cmd.Long = sb.String()
}
