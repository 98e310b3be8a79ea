package composer

import "go.uber.org/zap"

// Lookup failures degrade to an empty candidate list; typing must never be
// blocked by the remote service.

func (c *Composer) lookupUsers(gen uint64, keyword string) {
	candidates := fixedMentions(keyword)
	results, err := c.remote.Search(c.ctx, keyword, false, true)
	if err != nil {
		c.log.Debug("user search", zap.String("keyword", keyword), zap.Error(err))
	}
	for _, result := range results {
		candidates = append(candidates, Candidate{
			Kind:     CandidateUser,
			RID:      result.RID,
			Username: result.Username,
			Name:     result.Name,
		})
	}
	c.applyCandidates(&c.usersDeb, gen, TrackingUsers, candidates)
}

func (c *Composer) lookupRooms(gen uint64, keyword string) {
	results, err := c.remote.Search(c.ctx, keyword, true, false)
	if err != nil {
		c.log.Debug("room search", zap.String("keyword", keyword), zap.Error(err))
	}
	var candidates []Candidate
	for _, result := range results {
		name := result.Name
		if result.FName != "" {
			name = result.FName
		}
		candidates = append(candidates, Candidate{
			Kind:     CandidateRoom,
			RID:      result.RID,
			Name:     name,
			RoomType: result.Type,
		})
	}
	c.applyCandidates(&c.roomsDeb, gen, TrackingRooms, candidates)
}

// lookupEmojis merges custom emoji prefix matches with static shortcode
// substring matches, custom first, capped at the display count.
func (c *Composer) lookupEmojis(gen uint64, keyword string) {
	custom, err := c.store.SearchCustomEmojis(keyword, mentionsCountToDisplay)
	if err != nil {
		c.log.Debug("custom emoji search", zap.String("keyword", keyword), zap.Error(err))
	}
	var candidates []Candidate
	for _, emoji := range custom {
		extension := emoji.Extension
		candidates = append(candidates, Candidate{
			Kind:      CandidateEmoji,
			Name:      emoji.Name,
			Extension: &extension,
		})
	}
	candidates = append(candidates, searchStandardEmojis(keyword, mentionsCountToDisplay)...)
	if len(candidates) > mentionsCountToDisplay {
		candidates = candidates[:mentionsCountToDisplay]
	}
	c.applyCandidates(&c.emojisDeb, gen, TrackingEmojis, candidates)
}

func (c *Composer) lookupCommands(gen uint64, keyword string) {
	commands, err := c.store.SearchSlashCommands(keyword, mentionsCountToDisplay)
	if err != nil {
		c.log.Debug("slash command search", zap.String("keyword", keyword), zap.Error(err))
	}
	var candidates []Candidate
	for i := range commands {
		cmd := commands[i]
		candidates = append(candidates, Candidate{
			Kind:    CandidateCommand,
			Name:    cmd.ID,
			Command: &cmd,
		})
	}
	c.applyCandidates(&c.commandsDeb, gen, TrackingCommands, candidates)
}

func (c *Composer) lookupCanned(gen uint64, keyword string) {
	responses, err := c.remote.CannedResponses(c.ctx, keyword)
	if err != nil {
		c.log.Debug("canned response search", zap.String("keyword", keyword), zap.Error(err))
	}
	var candidates []Candidate
	for i := range responses {
		canned := responses[i]
		candidates = append(candidates, Candidate{
			Kind:   CandidateCanned,
			Name:   canned.Shortcut,
			Canned: &canned,
		})
	}
	c.applyCandidates(&c.cannedDeb, gen, TrackingCanned, candidates)
}

// applyCandidates replaces the candidate list wholesale, unless the lookup is
// stale or the user has moved on to another tracking mode.
func (c *Composer) applyCandidates(deb *debouncer, gen uint64, mode TrackingMode, candidates []Candidate) {
	if !deb.current(gen) {
		return
	}
	c.mu.Lock()
	if c.tracking.Mode != mode {
		c.mu.Unlock()
		return
	}
	c.candidates = candidates
	c.loading = false
	c.mu.Unlock()
	c.update()
}
