package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/quillchat/quill/internal/composer"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case engineUpdatedMsg:
		state := m.engine.State()
		if state.Text != m.input.Value() {
			m.setInputValue(state.Text)
		}
		if m.selectionIndex >= m.panelCount(state) {
			m.selectionIndex = -1
		}
		return m, nil

	case submitDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusIsError = true
		} else {
			m.status = msg.note
			m.statusIsError = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		state := m.engine.State()
		if state.Tracking.Mode != composer.TrackingNone || state.ShowPreview {
			m.engine.StopTracking()
			m.selectionIndex = -1
			return m, nil
		}
		return m, tea.Quit
	}

	if msg.Type == tea.KeyCtrlT {
		m.engine.ToggleSendToChannel()
		return m, nil
	}

	if handled, cmd := m.handleSelectionKeys(msg); handled {
		return m, cmd
	}

	if msg.Type == tea.KeyEnter {
		return m, m.submitCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncInput()
	return m, cmd
}

// handleSelectionKeys navigates whichever panel is open: typeahead candidates
// or command preview items.
func (m *Model) handleSelectionKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	state := m.engine.State()
	count := m.panelCount(state)
	if count == 0 {
		return false, nil
	}

	switch msg.Type {
	case tea.KeyUp:
		if m.selectionIndex < 0 {
			m.selectionIndex = count - 1
		} else if m.selectionIndex--; m.selectionIndex < 0 {
			m.selectionIndex = count - 1
		}
		return true, nil

	case tea.KeyDown:
		if m.selectionIndex < 0 {
			m.selectionIndex = 0
		} else if m.selectionIndex++; m.selectionIndex >= count {
			m.selectionIndex = 0
		}
		return true, nil

	case tea.KeyTab:
		if m.selectionIndex < 0 {
			m.selectionIndex = 0
		}
		return true, m.applySelection(state)

	case tea.KeyEnter:
		if m.selectionIndex >= 0 {
			return true, m.applySelection(state)
		}
	}
	return false, nil
}

func (m *Model) panelCount(state composer.State) int {
	if state.ShowPreview {
		return len(state.PreviewItems)
	}
	return len(state.Candidates)
}

func (m *Model) applySelection(state composer.State) tea.Cmd {
	index := m.selectionIndex
	m.selectionIndex = -1

	if state.ShowPreview {
		if index >= len(state.PreviewItems) {
			return nil
		}
		item := state.PreviewItems[index]
		return func() tea.Msg {
			if err := m.engine.SelectPreviewItem(context.Background(), item); err != nil {
				return submitDoneMsg{err: err}
			}
			return submitDoneMsg{note: "sent"}
		}
	}

	if index >= len(state.Candidates) {
		return nil
	}
	m.engine.SelectCandidate(state.Candidates[index])
	m.setInputValue(m.engine.State().Text)
	return nil
}

func (m *Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		submission, err := m.engine.Submit(context.Background())
		if err != nil {
			return submitDoneMsg{err: err}
		}

		switch submission.Kind {
		case composer.SubmissionNone:
			return submitDoneMsg{}

		case composer.SubmissionCommand:
			return submitDoneMsg{note: "/" + submission.Command.ID + " executed"}

		case composer.SubmissionEdit:
			message := submission.Message
			if err := m.sender.UpdateMessage(context.Background(), message.RID, message.ID, message.Text); err != nil {
				m.log.Warn("update message", zap.Error(err))
				return submitDoneMsg{err: err}
			}
			return submitDoneMsg{note: "edited"}

		default:
			message := submission.Message
			if err := m.sender.SendMessage(context.Background(), message.RID, message.Text, message.TMID, message.SendToChannel); err != nil {
				m.log.Warn("send message", zap.Error(err))
				return submitDoneMsg{err: err}
			}
			return submitDoneMsg{note: "sent"}
		}
	}
}
