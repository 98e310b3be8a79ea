package composer

import (
	"testing"

	"github.com/quillchat/quill/internal/types"
)

func TestClassify(t *testing.T) {
	channel := ClassifyOptions{RoomType: types.RoomTypeChannel}
	livechat := ClassifyOptions{RoomType: types.RoomTypeLivechat}

	tests := []struct {
		name    string
		text    string
		cursor  int
		opts    ClassifyOptions
		mode    TrackingMode
		keyword string
	}{
		{"empty", "", 0, channel, TrackingNone, ""},
		{"plain text", "hello there", 11, channel, TrackingNone, ""},
		{"user token", "@jo", 3, channel, TrackingUsers, "jo"},
		{"user mid sentence", "hey @jo", 7, channel, TrackingUsers, "jo"},
		{"room token", "#dev", 4, channel, TrackingRooms, "dev"},
		{"emoji token", ":smile", 6, channel, TrackingEmojis, "smile"},
		{"command start", "/echo", 5, channel, TrackingCommands, "echo"},
		{"command with args", "/echo hi", 8, channel, TrackingCommands, "echo hi"},
		{"command while sharing", "/echo", 5, ClassifyOptions{Sharing: true, RoomType: types.RoomTypeChannel}, TrackingNone, ""},
		{"canned in livechat", "!fa", 3, livechat, TrackingCanned, "fa"},
		{"canned outside livechat", "!fa", 3, channel, TrackingNone, ""},
		{"space ends tracking", "@jo ", 4, channel, TrackingNone, ""},
		{"cursor before sigil", "hi @jo", 2, channel, TrackingNone, ""},
		{"cursor inside token", "@john", 3, channel, TrackingUsers, "jo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, tt.cursor, tt.opts)
			if got.Mode != tt.mode {
				t.Fatalf("mode = %s, want %s", got.Mode, tt.mode)
			}
			if got.Keyword != tt.keyword {
				t.Fatalf("keyword = %q, want %q", got.Keyword, tt.keyword)
			}
		})
	}
}

func TestClassifyExactlyOneMode(t *testing.T) {
	// A message that begins with a slash always classifies as a command,
	// even when the token under the cursor carries another sigil.
	got := Classify("/msg @jo", 8, ClassifyOptions{RoomType: types.RoomTypeChannel})
	if got.Mode != TrackingCommands {
		t.Fatalf("mode = %s, want commands", got.Mode)
	}
}

func TestFixedMentions(t *testing.T) {
	both := fixedMentions("")
	if len(both) != 2 || both[0].Username != "here" || both[1].Username != "all" {
		t.Fatalf("unexpected fixed mentions: %+v", both)
	}

	all := fixedMentions("al")
	if len(all) != 1 || all[0].Username != "all" {
		t.Fatalf("expected only all, got %+v", all)
	}

	// "jo" is not a prefix of either literal.
	if got := fixedMentions("jo"); len(got) != 0 {
		t.Fatalf("expected no fixed mentions, got %+v", got)
	}
}

func TestSearchStandardEmojisCap(t *testing.T) {
	matches := searchStandardEmojis("a", 5)
	if len(matches) != 5 {
		t.Fatalf("expected capped result, got %d", len(matches))
	}
	if got := searchStandardEmojis("no-such-emoji-slug", 5); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
