package state

import "github.com/thenoetrevino/hireboard/internal/models"

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode Mode = iota // Board navigation
	HelpMode               // Key reference overlay
)

// Column layout:
//   - Content width: 40 characters
//   - Padding: 2 characters (1 on each side)
//   - Border: 2 characters (1 on each side)
//   - Spacing: 2 characters (between columns)
const (
	ColumnWidth   = 46
	reservedWidth = 4 // margins and scroll indicators
)

// UIState manages the user interface state.
// This includes the cursor (column and row), viewport scrolling,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	// selectedColumn is the index of the column under the cursor
	selectedColumn int

	// selectedRow is the index of the candidate under the cursor within that column
	selectedRow int

	width  int
	height int

	mode Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int

	// viewportSize is the number of columns that fit on the screen
	viewportSize int

	// rowScrollOffsets is the index of the first visible card per column
	rowScrollOffsets map[models.Stage]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:             NormalMode,
		viewportSize:     1, // Recalculated when width is set
		rowScrollOffsets: make(map[models.Stage]int),
	}
}

// SelectedColumn returns the index of the column under the cursor.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn updates the selected column index.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = max(0, index)
}

// SelectedRow returns the index of the candidate under the cursor.
func (s *UIState) SelectedRow() int {
	return s.selectedRow
}

// SetSelectedRow updates the selected row index.
func (s *UIState) SetSelectedRow(index int) {
	s.selectedRow = max(0, index)
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width and recalculates viewport size.
func (s *UIState) SetWidth(width int) {
	s.width = width
	s.calculateViewportSize()
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the height available to columns: terminal height
// minus the header and the status bar, never less than 5.
func (s *UIState) ContentHeight() int {
	const headerHeight = 2    // title + gap line
	const statusBarHeight = 2 // status bar + gap line
	return max(s.height-headerHeight-statusBarHeight, 5)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible column.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// ViewportSize returns the number of columns that fit on screen.
func (s *UIState) ViewportSize() int {
	return s.viewportSize
}

func (s *UIState) calculateViewportSize() {
	if s.width == 0 {
		s.viewportSize = 1
		return
	}
	s.viewportSize = max(1, (s.width-reservedWidth)/ColumnWidth)
}

// EnsureSelectionVisible scrolls the viewport so the selected column is on screen.
func (s *UIState) EnsureSelectionVisible(selectedColumn int) {
	if selectedColumn < s.viewportOffset {
		s.viewportOffset = selectedColumn
	}
	if selectedColumn >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = selectedColumn - s.viewportSize + 1
	}
}

// ClampViewport keeps the viewport inside [0, columnsLen) after a resize.
func (s *UIState) ClampViewport(columnsLen int) {
	if s.viewportOffset+s.viewportSize > columnsLen {
		s.viewportOffset = max(0, columnsLen-s.viewportSize)
	}
}

// RowScrollOffset returns the index of the first visible card in a column.
func (s *UIState) RowScrollOffset(stage models.Stage) int {
	return s.rowScrollOffsets[stage]
}

// EnsureRowVisible adjusts the column's scroll offset so the row is on screen.
//
// Parameters:
//   - stage: the column containing the row
//   - row: index of the selected candidate within the column
//   - visibleCount: number of cards that can be displayed at once
func (s *UIState) EnsureRowVisible(stage models.Stage, row int, visibleCount int) {
	offset := s.rowScrollOffsets[stage]
	if row < offset {
		offset = row
	}
	if row >= offset+visibleCount {
		offset = row - visibleCount + 1
	}
	s.rowScrollOffsets[stage] = max(0, offset)
}
