package db

import (
	"database/sql"

	"github.com/quillchat/quill/internal/types"
)

// GetSubscription returns the cached subscription for a room, or nil when the
// room has not been mirrored yet.
func (s *Store) GetSubscription(rid string) (*types.Subscription, error) {
	row := s.conn.QueryRow(`
		SELECT rid, name, fname, t, open, encrypted, draft_message,
		       disable_notifications, mute_group_mentions, hide_unread_status,
		       audio_notifications, desktop_notifications,
		       mobile_push_notifications, email_notifications,
		       team_id, team_main, prid, room_updated_at
		FROM quill_subscriptions
		WHERE rid = ?
	`, rid)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpsertSubscription creates or replaces the mirror row for a room.
func (s *Store) UpsertSubscription(sub types.Subscription) error {
	return s.Write(func(tx *sql.Tx) error {
		return upsertSubscriptionTx(tx, sub)
	})
}

func upsertSubscriptionTx(tx *sql.Tx, sub types.Subscription) error {
	_, err := tx.Exec(`
		INSERT INTO quill_subscriptions (
			rid, name, fname, t, open, encrypted, draft_message,
			disable_notifications, mute_group_mentions, hide_unread_status,
			audio_notifications, desktop_notifications,
			mobile_push_notifications, email_notifications,
			team_id, team_main, prid, room_updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(rid) DO UPDATE SET
			name = excluded.name,
			fname = excluded.fname,
			t = excluded.t,
			open = excluded.open,
			encrypted = excluded.encrypted,
			draft_message = excluded.draft_message,
			disable_notifications = excluded.disable_notifications,
			mute_group_mentions = excluded.mute_group_mentions,
			hide_unread_status = excluded.hide_unread_status,
			audio_notifications = excluded.audio_notifications,
			desktop_notifications = excluded.desktop_notifications,
			mobile_push_notifications = excluded.mobile_push_notifications,
			email_notifications = excluded.email_notifications,
			team_id = excluded.team_id,
			team_main = excluded.team_main,
			prid = excluded.prid,
			room_updated_at = excluded.room_updated_at
	`,
		sub.RID, sub.Name, nullableValue(sub.FName), string(sub.Type),
		boolInt(sub.Open), boolInt(sub.Encrypted), nullableValue(sub.DraftMessage),
		boolInt(sub.DisableNotifications), boolInt(sub.MuteGroupMentions), boolInt(sub.HideUnreadStatus),
		nullableValue(sub.AudioNotifications), nullableValue(sub.DesktopNotifications),
		nullableValue(sub.MobilePushNotifications), nullableValue(sub.EmailNotifications),
		nullableValue(sub.TeamID), boolInt(sub.TeamMain), nullableValue(sub.PRID), sub.RoomUpdatedAt,
	)
	return err
}

// SetRoomDraft stores the composer draft for a room. An empty draft clears
// the column.
func (s *Store) SetRoomDraft(rid, draft string) error {
	return s.Write(func(tx *sql.Tx) error {
		var value any
		if draft != "" {
			value = draft
		}
		_, err := tx.Exec("UPDATE quill_subscriptions SET draft_message = ? WHERE rid = ?", value, rid)
		return err
	})
}

// SetSubscriptionField updates one optimistically mutated column. The column
// name must come from callers' fixed field tables, never user input.
func (s *Store) SetSubscriptionField(rid, column string, value any) error {
	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE quill_subscriptions SET "+column+" = ? WHERE rid = ?", value, rid)
		return err
	})
}

func scanSubscription(scanner interface{ Scan(dest ...any) error }) (types.Subscription, error) {
	var row subscriptionRow
	err := scanner.Scan(
		&row.RID, &row.Name, &row.FName, &row.Type, &row.Open, &row.Encrypted, &row.DraftMessage,
		&row.DisableNotifications, &row.MuteGroupMentions, &row.HideUnreadStatus,
		&row.AudioNotifications, &row.DesktopNotifications,
		&row.MobilePushNotifications, &row.EmailNotifications,
		&row.TeamID, &row.TeamMain, &row.PRID, &row.RoomUpdatedAt,
	)
	if err != nil {
		return types.Subscription{}, err
	}
	return row.toSubscription(), nil
}

type subscriptionRow struct {
	RID                     string
	Name                    string
	FName                   sql.NullString
	Type                    string
	Open                    int64
	Encrypted               int64
	DraftMessage            sql.NullString
	DisableNotifications    int64
	MuteGroupMentions       int64
	HideUnreadStatus        int64
	AudioNotifications      sql.NullString
	DesktopNotifications    sql.NullString
	MobilePushNotifications sql.NullString
	EmailNotifications      sql.NullString
	TeamID                  sql.NullString
	TeamMain                int64
	PRID                    sql.NullString
	RoomUpdatedAt           int64
}

func (row subscriptionRow) toSubscription() types.Subscription {
	return types.Subscription{
		RID:                     row.RID,
		Name:                    row.Name,
		FName:                   nullStringPtr(row.FName),
		Type:                    types.RoomType(row.Type),
		Open:                    row.Open != 0,
		Encrypted:               row.Encrypted != 0,
		DraftMessage:            nullStringPtr(row.DraftMessage),
		DisableNotifications:    row.DisableNotifications != 0,
		MuteGroupMentions:       row.MuteGroupMentions != 0,
		HideUnreadStatus:        row.HideUnreadStatus != 0,
		AudioNotifications:      nullStringPtr(row.AudioNotifications),
		DesktopNotifications:    nullStringPtr(row.DesktopNotifications),
		MobilePushNotifications: nullStringPtr(row.MobilePushNotifications),
		EmailNotifications:      nullStringPtr(row.EmailNotifications),
		TeamID:                  nullStringPtr(row.TeamID),
		TeamMain:                row.TeamMain != 0,
		PRID:                    nullStringPtr(row.PRID),
		RoomUpdatedAt:           row.RoomUpdatedAt,
	}
}

func boolInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
