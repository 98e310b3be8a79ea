package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillchat/quill/internal/composer"
)

// NewRoomCmd creates the room command group for per-room settings. All writes
// are optimistic: the mirror updates first and rolls back if the server
// rejects.
func NewRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage per-room settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newRoomEncryptCmd(),
		newRoomNotifyCmd(),
		newRoomNotifyLevelCmd(),
	)
	return cmd
}

func roomSettings(cmd *cobra.Command) (*composer.RoomSettings, *appContext, error) {
	app, err := newAppContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	client, err := app.connect()
	if err != nil {
		app.close()
		return nil, nil, err
	}
	return composer.NewRoomSettings(app.store, client, app.log), app, nil
}

func newRoomEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <room-id>",
		Short: "Toggle end-to-end encryption for a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, app, err := roomSettings(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			roomID := args[0]
			allowed, err := settings.CanToggleEncryption(cmd.Context(), roomID)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if !allowed {
				return writeCommandError(cmd, fmt.Errorf("missing permission to edit room %s", roomID))
			}
			if err := settings.ToggleEncryption(cmd.Context(), roomID); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Encryption toggled")
			return nil
		},
	}
}

var switchFields = map[string]composer.NotificationField{
	"disable":      composer.FieldDisableNotifications,
	"mute-groups":  composer.FieldMuteGroupMentions,
	"hide-unread":  composer.FieldHideUnreadStatus,
}

var levelFields = map[string]composer.NotificationField{
	"audio":   composer.FieldAudioNotifications,
	"desktop": composer.FieldDesktopNotifications,
	"mobile":  composer.FieldMobilePushNotifications,
	"email":   composer.FieldEmailNotifications,
}

func newRoomNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify <room-id> <disable|mute-groups|hide-unread> <on|off>",
		Short: "Flip a boolean notification preference",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := switchFields[args[1]]
			if !ok {
				return writeCommandError(cmd, fmt.Errorf("unknown switch %q", args[1]))
			}
			var value bool
			switch args[2] {
			case "on":
				value = true
			case "off":
				value = false
			default:
				return writeCommandError(cmd, fmt.Errorf("value must be on or off, got %q", args[2]))
			}

			settings, app, err := roomSettings(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			if err := settings.SetNotificationSwitch(cmd.Context(), args[0], field, value); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved")
			return nil
		},
	}
}

func newRoomNotifyLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify-level <room-id> <audio|desktop|mobile|email> <default|all|mentions|nothing>",
		Short: "Set a notification level preference",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := levelFields[args[1]]
			if !ok {
				return writeCommandError(cmd, fmt.Errorf("unknown level field %q", args[1]))
			}

			settings, app, err := roomSettings(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			if err := settings.SetNotificationLevel(cmd.Context(), args[0], field, args[2]); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved")
			return nil
		},
	}
}
