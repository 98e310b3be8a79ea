package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillchat/quill/internal/composer"
)

// View implements tea.Model.
func (m *Model) View() string {
	state := m.engine.State()

	sections := []string{m.renderHeader(state)}
	if panel := m.renderPanel(state); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, m.input.View(), m.renderStatus(state))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader(state composer.State) string {
	label := "#" + m.roomLabel()
	if m.threadID != "" {
		label += " · thread"
	}
	if state.Editing {
		label += metaStyle.Render("  (editing)")
	}
	return headerStyle.Render(label)
}

func (m *Model) renderPanel(state composer.State) string {
	if state.ShowPreview {
		return m.renderPreview(state)
	}
	if state.Tracking.Mode == composer.TrackingNone {
		return ""
	}
	if state.Loading && len(state.Candidates) == 0 {
		return metaStyle.Render("  searching…")
	}
	if len(state.Candidates) == 0 {
		return metaStyle.Render("  no matches")
	}

	lines := make([]string, 0, len(state.Candidates))
	for i, candidate := range state.Candidates {
		prefix := "  "
		style := metaStyle
		if i == m.selectionIndex {
			prefix = "> "
			style = selectedStyle
		}
		lines = append(lines, style.Render(prefix+displayCandidate(candidate)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPreview(state composer.State) string {
	if len(state.PreviewItems) == 0 {
		return panelStyle.Render(metaStyle.Render("no preview results"))
	}
	lines := make([]string, 0, len(state.PreviewItems))
	for i, item := range state.PreviewItems {
		prefix := "  "
		style := metaStyle
		if i == m.selectionIndex {
			prefix = "> "
			style = selectedStyle
		}
		lines = append(lines, style.Render(prefix+item.Value))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatus(state composer.State) string {
	var parts []string
	if state.SendToChannel {
		parts = append(parts, indicatorStyle.Render("↳ also send to channel"))
	}
	if m.status != "" {
		if m.statusIsError {
			parts = append(parts, errorStyle.Render(m.status))
		} else {
			parts = append(parts, metaStyle.Render(m.status))
		}
	}
	parts = append(parts, metaStyle.Render("tab complete · enter send · esc dismiss · ctrl+c quit"))
	return strings.Join(parts, "  ")
}

func displayCandidate(candidate composer.Candidate) string {
	switch candidate.Kind {
	case composer.CandidateUser:
		if candidate.Name != "" {
			return "@" + candidate.Username + "  " + candidate.Name
		}
		return "@" + candidate.Username
	case composer.CandidateRoom:
		return "#" + candidate.Name
	case composer.CandidateEmoji:
		return ":" + candidate.Name + ":"
	case composer.CandidateCommand:
		display := "/" + candidate.Name
		if candidate.Command != nil && candidate.Command.Description != "" {
			display += "  " + candidate.Command.Description
		}
		return display
	case composer.CandidateCanned:
		display := "!" + candidate.Name
		if candidate.Canned != nil {
			display += "  " + truncate(candidate.Canned.Text, 60)
		}
		return display
	default:
		return candidate.Name
	}
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}
