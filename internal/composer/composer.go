package composer

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/db"
	"github.com/quillchat/quill/internal/types"
)

// typingHold is how long continuous typing must last before the typing
// indicator is raised.
const typingHold = time.Second

var trailingTokenRe = regexp.MustCompile(`(?i)[a-z0-9._-]+$`)

// Typer receives typing indicator transitions for a room. Implementations
// must not block.
type Typer interface {
	Typing(rid string, typing bool)
}

// Options fixes the room context a Composer is attached to.
type Options struct {
	RoomID   string
	ThreadID string // root message id when composing inside a thread
	RoomType types.RoomType
	Sharing  bool
	Typer    Typer
}

// Selection is the cursor range in runes.
type Selection struct {
	Start int
	End   int
}

func (s Selection) cursor() int {
	if s.End > s.Start {
		return s.End
	}
	return s.Start
}

// State is a render-ready snapshot of the composer.
type State struct {
	Text          string
	Selection     Selection
	Tracking      Tracking
	Candidates    []Candidate
	Loading       bool
	PreviewItems  []types.PreviewItem
	ShowPreview   bool
	ShowSend      bool
	SendToChannel bool
	Editing       bool
}

// Composer owns the message draft for one room or thread: it tracks the
// token under the cursor, runs the debounced typeahead lookups, negotiates
// slash-command previews, and persists the draft across attach/detach.
type Composer struct {
	store  *db.Store
	remote api.Caller
	log    *zap.Logger
	opts   Options

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	text           string
	selection      Selection
	tracking       Tracking
	candidates     []Candidate
	loading        bool
	previewItems   []types.PreviewItem
	showPreview    bool
	previewCommand *types.SlashCommand
	showSend       bool
	sendToChannel  bool
	editingID      string
	replyingID     string

	classifyDeb debouncer
	usersDeb    debouncer
	roomsDeb    debouncer
	emojisDeb   debouncer
	commandsDeb debouncer
	cannedDeb   debouncer

	typingMu    sync.Mutex
	typingTimer *time.Timer

	onUpdate func()
}

// New builds a composer for one room context. The logger may be nil.
func New(store *db.Store, remote api.Caller, logger *zap.Logger, opts Options) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Composer{
		store:  store,
		remote: remote,
		log:    logger,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetOnUpdate registers a callback invoked whenever asynchronous state
// (candidates, preview items) lands. It may be called from timer goroutines.
func (c *Composer) SetOnUpdate(fn func()) {
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

// Attach loads the persisted draft for the room or thread. A store miss is
// normal for rooms that were never opened.
func (c *Composer) Attach() error {
	if c.opts.Sharing {
		return nil
	}

	var draft *string
	if c.opts.ThreadID != "" {
		thread, err := c.store.GetThread(c.opts.ThreadID)
		if err != nil {
			return err
		}
		if thread == nil {
			c.log.Debug("thread not found", zap.String("tmid", c.opts.ThreadID))
		} else {
			draft = thread.DraftMessage
		}
	} else {
		sub, err := c.store.GetSubscription(c.opts.RoomID)
		if err != nil {
			return err
		}
		if sub == nil {
			c.log.Debug("room not found", zap.String("rid", c.opts.RoomID))
		} else {
			draft = sub.DraftMessage
		}
	}

	if draft != nil && *draft != "" {
		c.mu.Lock()
		c.text = *draft
		cursor := len([]rune(*draft))
		c.selection = Selection{Start: cursor, End: cursor}
		c.showSend = true
		c.mu.Unlock()
	}
	return nil
}

// Detach persists the draft, silences typing, and cancels every pending
// debounced lookup. The composer must not be used afterwards.
func (c *Composer) Detach() {
	c.stopDebouncers()
	c.setTyping(false)
	c.mu.Lock()
	text := c.text
	c.mu.Unlock()
	c.persistDraft(text)
	c.cancel()
}

// State returns a snapshot for the rendering layer.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Text:          c.text,
		Selection:     c.selection,
		Tracking:      c.tracking,
		Candidates:    append([]Candidate(nil), c.candidates...),
		Loading:       c.loading,
		PreviewItems:  append([]types.PreviewItem(nil), c.previewItems...),
		ShowPreview:   c.showPreview,
		ShowSend:      c.showSend,
		SendToChannel: c.sendToChannel,
		Editing:       c.editingID != "",
	}
}

// OnChangeText feeds a new composer value through the pipeline: the draft is
// persisted, any fetched preview is invalidated, and classification is
// re-run after the keystroke debounce.
func (c *Composer) OnChangeText(text string) {
	c.mu.Lock()
	c.text = text
	c.showSend = text != ""
	c.clearPreviewLocked()
	c.mu.Unlock()

	c.persistDraft(text)
	c.setTyping(text != "")
	c.classifyDeb.fire(classifyDebounce, c.classifyNow)
	c.update()
}

// SetSelection records the cursor range in runes.
func (c *Composer) SetSelection(start, end int) {
	c.mu.Lock()
	c.selection = Selection{Start: start, End: end}
	c.mu.Unlock()
}

// StartEditing puts the composer into edit mode for an existing message.
func (c *Composer) StartEditing(messageID, text string) {
	c.mu.Lock()
	c.editingID = messageID
	c.text = text
	cursor := len([]rune(text))
	c.selection = Selection{Start: cursor, End: cursor}
	c.showSend = text != ""
	c.mu.Unlock()
	c.update()
}

// CancelEditing leaves edit mode and clears the input.
func (c *Composer) CancelEditing() {
	c.mu.Lock()
	c.editingID = ""
	c.clearInputLocked()
	c.mu.Unlock()
	c.update()
}

// StartReply marks the next submission as a reply to messageID.
func (c *Composer) StartReply(messageID string) {
	c.mu.Lock()
	c.replyingID = messageID
	c.mu.Unlock()
}

// CancelReply clears the reply target.
func (c *Composer) CancelReply() {
	c.mu.Lock()
	c.replyingID = ""
	c.sendToChannel = false
	c.mu.Unlock()
}

// ToggleSendToChannel flips the "also send to channel" flag on thread
// replies.
func (c *Composer) ToggleSendToChannel() {
	c.mu.Lock()
	c.sendToChannel = !c.sendToChannel
	c.mu.Unlock()
	c.update()
}

// StopTracking exits any active tracking mode and hides the preview panel.
func (c *Composer) StopTracking() {
	c.stopDebouncers()
	c.mu.Lock()
	c.stopTrackingLocked()
	c.clearPreviewLocked()
	c.mu.Unlock()
	c.update()
}

// SelectCandidate splices the candidate's canonical text over the tracked
// token, leaves the cursor right after the insertion plus one space, and
// exits tracking.
func (c *Composer) SelectCandidate(candidate Candidate) {
	c.mu.Lock()
	mode := c.tracking.Mode
	runes := []rune(c.text)
	cursor := c.selection.cursor()
	if cursor > len(runes) {
		cursor = len(runes)
	}
	head := string(runes[:cursor])
	tail := string(runes[cursor:])

	// Canned responses replace the whole bang token, not just the keyword.
	if mode == TrackingCanned {
		if idx := strings.LastIndex(head, "!"); idx >= 0 {
			head = head[:idx]
		}
	}
	head = trailingTokenRe.ReplaceAllString(head, "")

	insert := candidate.insertText()
	c.text = head + insert + " " + tail
	newCursor := len([]rune(head+insert)) + 1
	c.selection = Selection{Start: newCursor, End: newCursor}
	c.showSend = true
	c.stopTrackingLocked()
	text := c.text
	c.mu.Unlock()

	if mode == TrackingEmojis {
		if err := c.RecordEmojiUsage(candidate); err != nil {
			c.log.Warn("record emoji usage", zap.Error(err))
		}
	}
	c.persistDraft(text)
	c.update()
}

// classifyNow runs after the keystroke debounce: it either starts preview
// negotiation, enters a tracking mode, or exits tracking.
func (c *Composer) classifyNow(gen uint64) {
	if !c.classifyDeb.current(gen) {
		return
	}

	c.mu.Lock()
	text := c.text
	cursor := c.selection.cursor()
	c.mu.Unlock()

	if text == "" {
		c.mu.Lock()
		c.stopTrackingLocked()
		c.mu.Unlock()
		c.update()
		return
	}

	if !c.opts.Sharing {
		if name, params, ok := splitCommandWithParams(text); ok {
			cmd, err := c.store.GetSlashCommand(name)
			if err != nil {
				c.log.Warn("slash command lookup", zap.Error(err))
			}
			if cmd != nil && cmd.ProvidesPreview {
				c.negotiatePreview(*cmd, name, params, text)
				return
			}
			if cmd == nil {
				c.log.Debug("slash command not found", zap.String("name", name))
			}
		}
	}

	tracking := Classify(text, cursor, ClassifyOptions{Sharing: c.opts.Sharing, RoomType: c.opts.RoomType})
	if tracking.Mode == TrackingNone {
		c.mu.Lock()
		c.stopTrackingLocked()
		c.mu.Unlock()
		c.update()
		return
	}
	c.identify(tracking)
}

// identify enters a tracking mode and dispatches its debounced lookup.
// Switching modes drops the previous mode's candidates before any pending
// lookup can resolve.
func (c *Composer) identify(tracking Tracking) {
	c.mu.Lock()
	if c.tracking.Mode != tracking.Mode {
		c.candidates = nil
	}
	c.tracking = tracking
	c.loading = true
	c.mu.Unlock()
	c.update()

	keyword := tracking.Keyword
	switch tracking.Mode {
	case TrackingUsers:
		c.usersDeb.fire(lookupDebounce, func(gen uint64) { c.lookupUsers(gen, keyword) })
	case TrackingRooms:
		c.roomsDeb.fire(lookupDebounce, func(gen uint64) { c.lookupRooms(gen, keyword) })
	case TrackingEmojis:
		c.emojisDeb.fire(lookupDebounce, func(gen uint64) { c.lookupEmojis(gen, keyword) })
	case TrackingCommands:
		c.commandsDeb.fire(lookupDebounce, func(gen uint64) { c.lookupCommands(gen, keyword) })
	case TrackingCanned:
		c.cannedDeb.fire(cannedDebounce, func(gen uint64) { c.lookupCanned(gen, keyword) })
	}
}

func (c *Composer) stopDebouncers() {
	c.classifyDeb.stop()
	c.usersDeb.stop()
	c.roomsDeb.stop()
	c.emojisDeb.stop()
	c.commandsDeb.stop()
	c.cannedDeb.stop()
}

func (c *Composer) stopTrackingLocked() {
	c.tracking = Tracking{Mode: TrackingNone}
	c.candidates = nil
	c.loading = false
}

func (c *Composer) clearPreviewLocked() {
	c.previewItems = nil
	c.showPreview = false
	c.previewCommand = nil
}

func (c *Composer) clearInputLocked() {
	c.text = ""
	c.selection = Selection{}
	c.showSend = false
	c.sendToChannel = false
}

func (c *Composer) persistDraft(text string) {
	if c.opts.Sharing {
		return
	}
	var err error
	if c.opts.ThreadID != "" {
		err = c.store.SetThreadDraft(c.opts.ThreadID, c.opts.RoomID, text)
	} else {
		err = c.store.SetRoomDraft(c.opts.RoomID, text)
	}
	if err != nil {
		c.log.Warn("persist draft", zap.Error(err))
	}
}

// setTyping debounces the typing indicator: continuous typing raises it after
// typingHold, stopping clears it immediately.
func (c *Composer) setTyping(isTyping bool) {
	if c.opts.Typer == nil || c.opts.Sharing {
		return
	}

	c.typingMu.Lock()
	defer c.typingMu.Unlock()

	if !isTyping {
		if c.typingTimer != nil {
			c.typingTimer.Stop()
			c.typingTimer = nil
		}
		c.opts.Typer.Typing(c.opts.RoomID, false)
		return
	}

	if c.typingTimer != nil {
		return
	}
	c.typingTimer = time.AfterFunc(typingHold, func() {
		c.opts.Typer.Typing(c.opts.RoomID, true)
		c.typingMu.Lock()
		c.typingTimer = nil
		c.typingMu.Unlock()
	})
}

func (c *Composer) update() {
	c.mu.Lock()
	fn := c.onUpdate
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
