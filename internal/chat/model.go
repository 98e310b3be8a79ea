package chat

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/composer"
	"github.com/quillchat/quill/internal/db"
	"github.com/quillchat/quill/internal/types"
)

// Sender posts finalized messages to the server. The composer itself never
// sends; it hands staged messages to this layer.
type Sender interface {
	SendMessage(ctx context.Context, roomID, text, tmid string, sendToChannel bool) error
	UpdateMessage(ctx context.Context, roomID, messageID, text string) error
}

// Options configure the chat UI for one room.
type Options struct {
	Store    *db.Store
	Remote   api.Caller
	Sender   Sender
	Logger   *zap.Logger
	RoomID   string
	RoomName string
	ThreadID string
	RoomType types.RoomType
}

// Run starts the composer UI and blocks until quit.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	fmt.Printf("\033]0;quill · %s\007", model.roomLabel())

	program := tea.NewProgram(model)
	model.engine.SetOnUpdate(func() {
		program.Send(engineUpdatedMsg{})
	})
	_, err = program.Run()
	model.Close()
	return err
}

// Model implements the composer UI.
type Model struct {
	engine *composer.Composer
	sender Sender
	log    *zap.Logger

	roomID   string
	roomName string
	threadID string

	input          textarea.Model
	width          int
	height         int
	selectionIndex int
	status         string
	statusIsError  bool
	lastInputValue string
	lastInputPos   int
}

// engineUpdatedMsg signals that asynchronous composer state landed.
type engineUpdatedMsg struct{}

// submitDoneMsg carries the result of a submit or preview execution.
type submitDoneMsg struct {
	note string
	err  error
}

// NewModel builds the UI model and attaches the composer, restoring any
// persisted draft into the input.
func NewModel(opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	engine := composer.New(opts.Store, opts.Remote, opts.Logger, composer.Options{
		RoomID:   opts.RoomID,
		ThreadID: opts.ThreadID,
		RoomType: opts.RoomType,
	})
	if err := engine.Attach(); err != nil {
		return nil, err
	}

	input := textarea.New()
	input.Placeholder = "Message"
	input.Prompt = "┃ "
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	model := &Model{
		engine:         engine,
		sender:         opts.Sender,
		log:            opts.Logger,
		roomID:         opts.RoomID,
		roomName:       opts.RoomName,
		threadID:       opts.ThreadID,
		input:          input,
		selectionIndex: -1,
	}

	if state := engine.State(); state.Text != "" {
		model.input.SetValue(state.Text)
		model.input.CursorEnd()
		model.status = "draft restored"
	}
	return model, nil
}

// Close detaches the composer, persisting the draft.
func (m *Model) Close() {
	m.engine.Detach()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) roomLabel() string {
	if m.roomName != "" {
		return m.roomName
	}
	return m.roomID
}
