package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/llehouerou/ssai-innovid/internal/adswrapper"
	"github.com/llehouerou/ssai-innovid/internal/render"
)

const maxLogLines = 500

// LogPane collects wrapper log lines for display. It is only touched from
// the UI goroutine.
type LogPane struct {
	lines []string
	vp    viewport.Model
	dirty bool
}

var _ adswrapper.Logger = (*LogPane)(nil)

// NewLogPane creates an empty pane.
func NewLogPane() *LogPane {
	return &LogPane{vp: viewport.New(0, 0)}
}

// Log appends message, one entry per line.
func (p *LogPane) Log(message string) {
	for line := range strings.SplitSeq(strings.TrimRight(message, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.lines = append(p.lines, render.Sanitize(line))
	}
	if over := len(p.lines) - maxLogLines; over > 0 {
		p.lines = p.lines[over:]
	}
	p.dirty = true
}

// Lines returns the retained lines, oldest first.
func (p *LogPane) Lines() []string { return p.lines }

// SetSize resizes the visible area.
func (p *LogPane) SetSize(width, height int) {
	p.vp.Width = max(width, 0)
	p.vp.Height = max(height, 0)
	p.dirty = true
}

// View renders the newest lines that fit.
func (p *LogPane) View() string {
	if p.dirty {
		width := p.vp.Width
		rendered := make([]string, len(p.lines))
		for i, l := range p.lines {
			rendered[i] = render.LogLine(l, width)
		}
		p.vp.SetContent(strings.Join(rendered, "\n"))
		p.vp.GotoBottom()
		p.dirty = false
	}
	return p.vp.View()
}
