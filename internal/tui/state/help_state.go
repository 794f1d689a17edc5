package state

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// HelpState holds the scrollable key reference shown in HelpMode
type HelpState struct {
	viewport viewport.Model
}

// NewHelpState creates an empty help viewport
func NewHelpState() *HelpState {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &HelpState{viewport: vp}
}

// Open loads content into a width x height viewport scrolled to the top
func (s *HelpState) Open(content string, width, height int) {
	s.viewport.SetWidth(max(width, 1))
	s.viewport.SetHeight(max(height, 1))
	s.viewport.SetContent(content)
	s.viewport.GotoTop()
}

// Update forwards scroll keys and mouse wheel events to the viewport
func (s *HelpState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

// View renders the visible part of the help text
func (s *HelpState) View() string {
	return s.viewport.View()
}

// AtTop reports whether the viewport is scrolled all the way up
func (s *HelpState) AtTop() bool {
	return s.viewport.AtTop()
}
