package chat

import (
	"testing"

	"github.com/quillchat/quill/internal/composer"
	"github.com/quillchat/quill/internal/types"
)

func TestDisplayCandidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate composer.Candidate
		want      string
	}{
		{"user", composer.Candidate{Kind: composer.CandidateUser, Username: "joan"}, "@joan"},
		{"user with name", composer.Candidate{Kind: composer.CandidateUser, Username: "joan", Name: "Joan A"}, "@joan  Joan A"},
		{"room", composer.Candidate{Kind: composer.CandidateRoom, Name: "dev"}, "#dev"},
		{"emoji", composer.Candidate{Kind: composer.CandidateEmoji, Name: "smile"}, ":smile:"},
		{
			"command",
			composer.Candidate{Kind: composer.CandidateCommand, Name: "gimme", Command: &types.SlashCommand{ID: "gimme", Description: "Gimme something"}},
			"/gimme  Gimme something",
		},
		{
			"canned",
			composer.Candidate{Kind: composer.CandidateCanned, Name: "faq", Canned: &types.CannedResponse{Shortcut: "faq", Text: "See the FAQ"}},
			"!faq  See the FAQ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayCandidate(tt.candidate); got != tt.want {
				t.Fatalf("displayCandidate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	long := truncate("a long canned response body", 10)
	if len([]rune(long)) != 10 {
		t.Fatalf("truncated length = %d", len([]rune(long)))
	}
}
