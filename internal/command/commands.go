package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommandsCmd creates the commands command, listing the mirrored slash
// command registry.
func NewCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands [prefix]",
		Short: "List mirrored slash commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}

			commands, err := app.store.SearchSlashCommands(prefix, 200)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if len(commands) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No commands mirrored. Run: quill sync")
				return nil
			}
			for _, command := range commands {
				line := "/" + command.ID
				if command.Params != "" {
					line += " " + command.Params
				}
				if command.Description != "" {
					line += "  " + command.Description
				}
				if command.ProvidesPreview {
					line += "  [preview]"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
