package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ssai-innovid/internal/player"
	"github.com/llehouerou/ssai-innovid/internal/render"
)

const (
	headerHeight    = 1
	playerBarHeight = 3 // top border + content + bottom border
	statusHeight    = 1
	helpHeight      = 1
	panelChrome     = 2
)

const helpText = "space pause/resume · ←/→ seek · p/r/x ad pause/resume/restart · d release · q quit"

func (m Model) logWidth() int {
	return max(m.width-panelChrome-2, 0)
}

func (m Model) logHeight() int {
	return max(m.height-headerHeight-playerBarHeight-statusHeight-helpHeight-panelChrome, 0)
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	parts := []string{
		m.renderHeader(),
		m.renderPlayerBar(),
		m.renderStatus(),
		panelStyle.Padding(0, 1).Width(m.width - panelChrome).Render(m.logs.View()),
		render.Fit(mutedStyle.Render(helpText), m.width),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	left := render.Gradient(m.title, titleFrom, titleTo)
	right := mutedStyle.Render(render.Truncate(m.rt.Player.StreamURL(), max(m.width/2, 0)))
	return render.Fit(render.Row(left, right, m.width), m.width)
}

func stateSymbol(s player.State) string {
	switch s {
	case player.Playing:
		return "▶"
	case player.Paused:
		return "⏸"
	case player.Stopped:
	}
	return "■"
}

func (m Model) renderPlayerBar() string {
	innerWidth := max(m.width-6, 0)
	pos := m.rt.Player.Position()
	dur := m.rt.Player.Duration()

	status := stateSymbol(m.rt.Player.State())
	timeStr := fmt.Sprintf("%s / %s", render.Clock(pos), render.Clock(dur))

	var adInfo string
	if info, ok := m.rt.AdProgress(); ok {
		adInfo = adStyle.Render(fmt.Sprintf("AD %d/%d  %s / %s",
			info.AdPosition, info.TotalAds, render.Clock(info.CurrentTime), render.Clock(info.Duration)))
	}

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(timeStr) + 3
	if adInfo != "" {
		fixed += lipgloss.Width(adInfo) + 3
	}
	barWidth := max(innerWidth-fixed, 5)

	var b strings.Builder
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(m.renderProgress(pos, dur, barWidth))
	b.WriteString("   ")
	b.WriteString(timeStr)
	if adInfo != "" {
		b.WriteString("   ")
		b.WriteString(adInfo)
	}
	return panelStyle.Padding(0, 2).Width(m.width - panelChrome).Render(b.String())
}

// renderProgress draws the stream bar with unplayed ad breaks marked.
func (m Model) renderProgress(pos, dur time.Duration, width int) string {
	if dur <= 0 {
		return progressEmptyStyle.Render(strings.Repeat("─", width))
	}
	cells := make([]string, width)
	marks := make([]bool, width)
	if mgr, ok := m.rt.Manager(); ok {
		for _, cue := range mgr.CuePoints() {
			if cue.Played {
				continue
			}
			marks[min(int(int64(width)*int64(cue.Start)/int64(dur)), width-1)] = true
		}
	}
	filled := min(int(int64(width)*int64(pos)/int64(dur)), width)
	for i := range cells {
		switch {
		case marks[i]:
			cells[i] = progressAdStyle.Render("◆")
		case i < filled:
			cells[i] = progressFilledStyle.Render("━")
		default:
			cells[i] = progressEmptyStyle.Render("─")
		}
	}
	return strings.Join(cells, "")
}

func (m Model) renderStatus() string {
	ad := "none"
	if m.rt.SessionRunning() {
		ad = adStyle.Render("running")
	}
	controls := "on"
	if !m.rt.Player.ControlsEnabled() {
		controls = "locked"
	}
	left := fmt.Sprintf(" video %s · ad-ui %s · interactive %s · controls %s",
		m.rt.Video.Visibility(), m.rt.AdUI.Visibility(), ad, controls)
	right := mutedStyle.Render(m.status)
	return render.Fit(render.Row(left, right, m.width), m.width)
}
