package composer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/db"
	"github.com/quillchat/quill/internal/types"
)

// NotificationField names a per-room notification preference. The column
// table below is the only place these map to storage, so every field flows
// through the same optimistic path.
type NotificationField string

const (
	FieldDisableNotifications    NotificationField = "disableNotifications"
	FieldMuteGroupMentions       NotificationField = "muteGroupMentions"
	FieldHideUnreadStatus        NotificationField = "hideUnreadStatus"
	FieldAudioNotifications      NotificationField = "audioNotifications"
	FieldDesktopNotifications    NotificationField = "desktopNotifications"
	FieldMobilePushNotifications NotificationField = "mobilePushNotifications"
	FieldEmailNotifications      NotificationField = "emailNotifications"
)

var notificationColumns = map[NotificationField]string{
	FieldDisableNotifications:    "disable_notifications",
	FieldMuteGroupMentions:       "mute_group_mentions",
	FieldHideUnreadStatus:        "hide_unread_status",
	FieldAudioNotifications:      "audio_notifications",
	FieldDesktopNotifications:    "desktop_notifications",
	FieldMobilePushNotifications: "mobile_push_notifications",
	FieldEmailNotifications:      "email_notifications",
}

// RoomSettings applies provisional room-setting changes: the local mirror is
// updated first so the UI reacts immediately, then the server is asked to
// confirm, and on any failure the previous value is written back.
type RoomSettings struct {
	store  *db.Store
	remote api.Caller
	log    *zap.Logger
}

// NewRoomSettings builds the optimistic room-settings manager. The logger may
// be nil.
func NewRoomSettings(store *db.Store, remote api.Caller, logger *zap.Logger) *RoomSettings {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomSettings{store: store, remote: remote, log: logger}
}

// applyOptimistic is the single optimistic-update implementation: write the
// new column value, run confirm once, and restore the previous value if
// confirmation fails. A failed restore is logged and left for a full resync.
func (s *RoomSettings) applyOptimistic(rid, column string, newValue, previous any, confirm func() error) error {
	if err := s.store.SetSubscriptionField(rid, column, newValue); err != nil {
		return fmt.Errorf("apply local update: %w", err)
	}

	err := confirm()
	if err == nil {
		return nil
	}

	s.log.Warn("remote confirmation failed, rolling back",
		zap.String("rid", rid), zap.String("column", column), zap.Error(err))
	if revertErr := s.store.SetSubscriptionField(rid, column, previous); revertErr != nil {
		s.log.Error("rollback failed, mirror needs resync",
			zap.String("rid", rid), zap.String("column", column), zap.Error(revertErr))
	}
	return err
}

// ToggleEncryption flips the room's E2E encryption flag optimistically.
func (s *RoomSettings) ToggleEncryption(ctx context.Context, rid string) error {
	sub, err := s.store.GetSubscription(rid)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("room %s not mirrored", rid)
	}

	encrypted := !sub.Encrypted
	return s.applyOptimistic(rid, "encrypted", boolColumn(encrypted), boolColumn(sub.Encrypted), func() error {
		return s.remote.SaveRoomSettings(ctx, rid, api.RoomSettings{"encrypted": encrypted})
	})
}

// SetNotificationSwitch changes a boolean notification preference. The server
// receives the original "1"/"0" convention.
func (s *RoomSettings) SetNotificationSwitch(ctx context.Context, rid string, field NotificationField, value bool) error {
	previous, err := s.previousSwitch(rid, field)
	if err != nil {
		return err
	}
	column := notificationColumns[field]
	wire := "0"
	if value {
		wire = "1"
	}
	return s.applyOptimistic(rid, column, boolColumn(value), boolColumn(previous), func() error {
		return s.remote.SaveNotificationSettings(ctx, rid, api.NotificationSettings{string(field): wire})
	})
}

// SetNotificationLevel changes a picker notification preference (default,
// all, mentions, nothing).
func (s *RoomSettings) SetNotificationLevel(ctx context.Context, rid string, field NotificationField, value string) error {
	previous, err := s.previousLevel(rid, field)
	if err != nil {
		return err
	}
	column := notificationColumns[field]
	var previousValue any
	if previous != nil {
		previousValue = *previous
	}
	return s.applyOptimistic(rid, column, value, previousValue, func() error {
		return s.remote.SaveNotificationSettings(ctx, rid, api.NotificationSettings{string(field): value})
	})
}

func (s *RoomSettings) previousSwitch(rid string, field NotificationField) (bool, error) {
	sub, err := s.subscription(rid)
	if err != nil {
		return false, err
	}
	switch field {
	case FieldDisableNotifications:
		return sub.DisableNotifications, nil
	case FieldMuteGroupMentions:
		return sub.MuteGroupMentions, nil
	case FieldHideUnreadStatus:
		return sub.HideUnreadStatus, nil
	default:
		return false, fmt.Errorf("field %s is not a switch", field)
	}
}

func (s *RoomSettings) previousLevel(rid string, field NotificationField) (*string, error) {
	sub, err := s.subscription(rid)
	if err != nil {
		return nil, err
	}
	switch field {
	case FieldAudioNotifications:
		return sub.AudioNotifications, nil
	case FieldDesktopNotifications:
		return sub.DesktopNotifications, nil
	case FieldMobilePushNotifications:
		return sub.MobilePushNotifications, nil
	case FieldEmailNotifications:
		return sub.EmailNotifications, nil
	default:
		return nil, fmt.Errorf("field %s is not a level", field)
	}
}

func (s *RoomSettings) subscription(rid string) (*types.Subscription, error) {
	sub, err := s.store.GetSubscription(rid)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("room %s not mirrored", rid)
	}
	return sub, nil
}

// CanToggleEncryption checks the e2e permission for a room against the
// server.
func (s *RoomSettings) CanToggleEncryption(ctx context.Context, rid string) (bool, error) {
	flags, err := s.remote.HasPermission(ctx, []string{"edit-room"}, rid)
	if err != nil {
		return false, err
	}
	return len(flags) > 0 && flags[0], nil
}

func boolColumn(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
