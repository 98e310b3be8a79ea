package composer

import (
	"strings"

	"github.com/quillchat/quill/internal/types"
)

// TrackingMode identifies which typeahead lookup the composer is running.
type TrackingMode int

const (
	TrackingNone TrackingMode = iota
	TrackingUsers
	TrackingRooms
	TrackingEmojis
	TrackingCommands
	TrackingCanned
)

func (m TrackingMode) String() string {
	switch m {
	case TrackingUsers:
		return "users"
	case TrackingRooms:
		return "rooms"
	case TrackingEmojis:
		return "emojis"
	case TrackingCommands:
		return "commands"
	case TrackingCanned:
		return "canned"
	default:
		return "none"
	}
}

// Tracking is the classified state of the token under the cursor. At most one
// mode is active at a time.
type Tracking struct {
	Mode    TrackingMode
	Keyword string
}

// ClassifyOptions carries the room context the transition function needs.
type ClassifyOptions struct {
	Sharing  bool
	RoomType types.RoomType
}

// Classify inspects the composer text and cursor offset (in runes) and
// decides which tracking mode applies. Slash commands are matched against the
// whole message; every other sigil is matched against the token ending at the
// cursor.
func Classify(text string, cursor int, opts ClassifyOptions) Tracking {
	if text == "" {
		return Tracking{Mode: TrackingNone}
	}

	if strings.HasPrefix(text, "/") && !opts.Sharing {
		return Tracking{Mode: TrackingCommands, Keyword: text[1:]}
	}

	token := tokenAtCursor(text, cursor)
	if token == "" {
		return Tracking{Mode: TrackingNone}
	}
	keyword := token[1:]

	switch token[0] {
	case '#':
		return Tracking{Mode: TrackingRooms, Keyword: keyword}
	case '@':
		return Tracking{Mode: TrackingUsers, Keyword: keyword}
	case ':':
		return Tracking{Mode: TrackingEmojis, Keyword: keyword}
	case '!':
		if opts.RoomType == types.RoomTypeLivechat {
			return Tracking{Mode: TrackingCanned, Keyword: keyword}
		}
	}
	return Tracking{Mode: TrackingNone}
}

// tokenAtCursor returns the space-delimited word ending at the cursor. When
// the cursor sits at the end of the text the last word of the whole message
// is used.
func tokenAtCursor(text string, cursor int) string {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor < len(runes) {
		runes = runes[:cursor]
	}
	words := strings.Split(string(runes), " ")
	return words[len(words)-1]
}
