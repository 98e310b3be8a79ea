package api

import (
	"context"

	"github.com/quillchat/quill/internal/types"
)

// SearchResult is one entry returned by the server-side spotlight search.
// Users carry a username, rooms carry a name and type.
type SearchResult struct {
	RID      string         `json:"rid,omitempty"`
	ID       string         `json:"_id,omitempty"`
	Username string         `json:"username,omitempty"`
	Name     string         `json:"name,omitempty"`
	FName    string         `json:"fname,omitempty"`
	Type     types.RoomType `json:"t,omitempty"`
}

// NotificationSettings carries the per-room notification fields a client may
// change. String fields use the server's "1"/"0" convention for toggles.
type NotificationSettings map[string]string

// RoomSettings carries room-level fields a client may change.
type RoomSettings map[string]any

// Caller is the remote chat service boundary the engine depends on. The wire
// protocol behind it is opaque; implementations must surface negative success
// flags as errors only where methods document it.
type Caller interface {
	Search(ctx context.Context, text string, filterRooms, filterUsers bool) ([]SearchResult, error)
	CannedResponses(ctx context.Context, text string) ([]types.CannedResponse, error)
	CommandPreview(ctx context.Context, name, roomID, params string) (types.CommandPreview, error)
	ExecuteCommandPreview(ctx context.Context, name, params, roomID string, item types.PreviewItem, triggerID, tmid string) error
	RunCommand(ctx context.Context, name, roomID, params, triggerID, tmid string) error
	HasPermission(ctx context.Context, permissionIDs []string, roomID string) ([]bool, error)
	SaveNotificationSettings(ctx context.Context, roomID string, settings NotificationSettings) error
	SaveRoomSettings(ctx context.Context, roomID string, settings RoomSettings) error
}
