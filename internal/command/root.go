package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "quill"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Quill - terminal client for team chat",
		Long:          "Quill is a terminal chat client with an offline mirror, typeahead completion, and slash commands.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", "", "path to config file")

	cmd.AddCommand(
		NewChatCmd(),
		NewSyncCmd(),
		NewCommandsCmd(),
		NewEmojisCmd(),
		NewDraftCmd(),
		NewThreadsCmd(),
		NewRoomCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
