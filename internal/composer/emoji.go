package composer

import (
	"strings"

	"github.com/forPelevin/gomoji"

	"github.com/quillchat/quill/internal/types"
)

// searchStandardEmojis substring-matches the static shortcode table, capped
// at limit results.
func searchStandardEmojis(keyword string, limit int) []Candidate {
	var matches []Candidate
	for _, emoji := range gomoji.AllEmojis() {
		if !strings.Contains(emoji.Slug, keyword) {
			continue
		}
		matches = append(matches, Candidate{Kind: CandidateEmoji, Name: emoji.Slug})
		if len(matches) >= limit {
			break
		}
	}
	return matches
}

// RecordEmojiUsage bumps the local usage count backing the quick-pick
// ranking. Usage stats never leave the device.
func (c *Composer) RecordEmojiUsage(candidate Candidate) error {
	record := types.FrequentlyUsedEmoji{
		Content:   candidate.Name,
		Extension: candidate.Extension,
		IsCustom:  candidate.Extension != nil,
	}
	return c.store.TouchFrequentEmoji(record)
}

// FrequentEmojis returns the ranked quick-pick list. Truncation to the
// panel's slot count is the rendering layer's concern.
func (c *Composer) FrequentEmojis() ([]types.FrequentlyUsedEmoji, error) {
	return c.store.FrequentEmojis()
}
