package chat

import "strings"

// inputCursorPos returns the cursor offset in runes across the whole textarea
// value.
func (m *Model) inputCursorPos() int {
	value := m.input.Value()
	if value == "" {
		return 0
	}
	lines := strings.Split(value, "\n")
	row := m.input.Line()
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	col := m.input.LineInfo().ColumnOffset
	if col < 0 {
		col = 0
	}
	lineRunes := []rune(lines[row])
	if col > len(lineRunes) {
		col = len(lineRunes)
	}

	pos := 0
	for i := 0; i < row; i++ {
		pos += len([]rune(lines[i])) + 1
	}
	return pos + col
}

// syncInput pushes the textarea value and cursor into the composer when
// either changed.
func (m *Model) syncInput() {
	value := m.input.Value()
	pos := m.inputCursorPos()
	if value == m.lastInputValue && pos == m.lastInputPos {
		return
	}
	textChanged := value != m.lastInputValue
	m.lastInputValue = value
	m.lastInputPos = pos

	m.engine.SetSelection(pos, pos)
	if textChanged {
		m.selectionIndex = -1
		m.engine.OnChangeText(value)
	}
}

// setInputValue replaces the textarea contents and re-syncs the composer
// bookkeeping without re-triggering classification.
func (m *Model) setInputValue(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.lastInputValue = m.input.Value()
	m.lastInputPos = m.inputCursorPos()
	m.engine.SetSelection(m.lastInputPos, m.lastInputPos)
}
