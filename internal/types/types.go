package types

// RoomType identifies the kind of room a subscription mirrors.
type RoomType string

const (
	RoomTypeChannel  RoomType = "c"
	RoomTypePrivate  RoomType = "p"
	RoomTypeDirect   RoomType = "d"
	RoomTypeLivechat RoomType = "l"
)

// Subscription mirrors a server-side room membership. The server owns every
// field; local writes are provisional until the server confirms them.
type Subscription struct {
	RID                     string   `json:"rid"`
	Name                    string   `json:"name"`
	FName                   *string  `json:"fname,omitempty"`
	Type                    RoomType `json:"t"`
	Open                    bool     `json:"open"`
	Encrypted               bool     `json:"encrypted"`
	DraftMessage            *string  `json:"draft_message,omitempty"`
	DisableNotifications    bool     `json:"disable_notifications"`
	MuteGroupMentions       bool     `json:"mute_group_mentions"`
	HideUnreadStatus        bool     `json:"hide_unread_status"`
	AudioNotifications      *string  `json:"audio_notifications,omitempty"`
	DesktopNotifications    *string  `json:"desktop_notifications,omitempty"`
	MobilePushNotifications *string  `json:"mobile_push_notifications,omitempty"`
	EmailNotifications      *string  `json:"email_notifications,omitempty"`
	TeamID                  *string  `json:"team_id,omitempty"`
	TeamMain                bool     `json:"team_main"`
	PRID                    *string  `json:"prid,omitempty"`
	RoomUpdatedAt           int64    `json:"room_updated_at"`
}

// Thread mirrors a thread the user has opened or replied in. The ID is the
// GUID of the message that started the thread.
type Thread struct {
	ID           string  `json:"id"`
	RID          string  `json:"rid"`
	DraftMessage *string `json:"draft_message,omitempty"`
	ReplyCount   int64   `json:"reply_count"`
	LastReplyTS  *int64  `json:"last_reply_ts,omitempty"`
}

// SlashCommand is a read-only mirror of a server-declared command. The ID is
// the command name without the leading slash.
type SlashCommand struct {
	ID              string  `json:"id"`
	Params          string  `json:"params,omitempty"`
	Description     string  `json:"description,omitempty"`
	ClientOnly      bool    `json:"client_only"`
	ProvidesPreview bool    `json:"provides_preview"`
	AppID           *string `json:"app_id,omitempty"`
}

// CustomEmoji is a server-defined image emoji.
type CustomEmoji struct {
	Name      string   `json:"name"`
	Extension string   `json:"extension"`
	Aliases   []string `json:"aliases,omitempty"`
}

// FrequentlyUsedEmoji records local usage of an emoji for quick-pick
// ranking. This is the only locally authoritative entity; the server never
// sees usage counts.
type FrequentlyUsedEmoji struct {
	Content   string  `json:"content"`
	Extension *string `json:"extension,omitempty"`
	IsCustom  bool    `json:"is_custom"`
	Count     int64   `json:"count"`
}

// CannedResponse is a predefined reply template for livechat rooms.
type CannedResponse struct {
	ID       string `json:"id"`
	Shortcut string `json:"shortcut"`
	Text     string `json:"text"`
	Scope    string `json:"scope,omitempty"`
}

// PreviewItem is one entry of a slash-command preview payload.
type PreviewItem struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CommandPreview is the server response to a preview request.
type CommandPreview struct {
	Success bool          `json:"success"`
	Items   []PreviewItem `json:"items"`
}
