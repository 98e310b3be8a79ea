package command

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quillchat/quill/internal/chat"
	"github.com/quillchat/quill/internal/types"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <room-id>",
		Short: "Open the composer for a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			client, err := app.connect()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			roomID := args[0]
			threadID, _ := cmd.Flags().GetString("thread")

			roomName := ""
			roomType := types.RoomTypeChannel
			sub, err := app.store.GetSubscription(roomID)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if sub != nil {
				roomName = sub.Name
				roomType = sub.Type
			}

			// Production logging goes to stderr, which the TUI owns while it
			// runs.
			return chat.Run(chat.Options{
				Store:    app.store,
				Remote:   client,
				Sender:   client,
				Logger:   zap.NewNop(),
				RoomID:   roomID,
				RoomName: roomName,
				ThreadID: threadID,
				RoomType: roomType,
			})
		},
	}
	cmd.Flags().String("thread", "", "compose inside a thread (root message id)")
	return cmd
}
