package composer

import (
	"strings"

	"github.com/quillchat/quill/internal/types"
)

// mentionsCountToDisplay caps the merged emoji candidate list.
const mentionsCountToDisplay = 20

// CandidateKind discriminates the transient typeahead results.
type CandidateKind int

const (
	CandidateUser CandidateKind = iota
	CandidateRoom
	CandidateEmoji
	CandidateCommand
	CandidateCanned
)

// Candidate is one typeahead result. Candidates are in-memory only and are
// replaced wholesale on every lookup completion.
type Candidate struct {
	Kind      CandidateKind
	RID       string
	Username  string
	Name      string
	RoomType  types.RoomType
	Extension *string
	Command   *types.SlashCommand
	Canned    *types.CannedResponse
}

// insertText is the canonical text spliced into the composer when the
// candidate is selected. Emoji insertions close the shortcode because the
// opening colon is already in the text.
func (c Candidate) insertText() string {
	switch c.Kind {
	case CandidateUser:
		return c.Username
	case CandidateRoom:
		return c.Name
	case CandidateEmoji:
		return c.Name + ":"
	case CandidateCommand:
		if c.Command != nil {
			return c.Command.ID
		}
		return c.Name
	case CandidateCanned:
		if c.Canned != nil {
			return c.Canned.Text
		}
		return c.Name
	default:
		return c.Name
	}
}

// fixedMentions returns the synthetic broadcast candidates. They only appear
// while the keyword is still a prefix of the literal words.
func fixedMentions(keyword string) []Candidate {
	var fixed []Candidate
	if strings.HasPrefix("here", keyword) {
		fixed = append(fixed, Candidate{Kind: CandidateUser, RID: "-2", Username: "here"})
	}
	if strings.HasPrefix("all", keyword) {
		fixed = append(fixed, Candidate{Kind: CandidateUser, RID: "-1", Username: "all"})
	}
	return fixed
}
