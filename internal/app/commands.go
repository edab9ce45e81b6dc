package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// TickInterval is how often the SDK is advanced and the bar redrawn.
const TickInterval = 250 * time.Millisecond

// TickMsg advances the run.
type TickMsg time.Time

// QueueReadyMsg signals pending UI work.
type QueueReadyMsg struct{}

// TickCmd returns a command that sends TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchQueue returns a command that waits until q has pending work.
// Update drains the queue on the UI goroutine and re-arms the watch.
func WatchQueue(q *uiloop.Queue) tea.Cmd {
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		<-q.Ready()
		return QueueReadyMsg{}
	}
}
