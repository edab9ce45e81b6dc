package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// Model is the terminal host.
type Model struct {
	rt    *Runtime
	queue *uiloop.Queue
	logs  *LogPane
	title string

	width  int
	height int
	status string
}

// New creates the model. queue must be the Poster the Runtime was built
// with; logs should be the Runtime's sink or part of it.
func New(rt *Runtime, queue *uiloop.Queue, logs *LogPane, title string) Model {
	if logs == nil {
		logs = NewLogPane()
	}
	return Model{rt: rt, queue: queue, logs: logs, title: title}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), WatchQueue(m.queue))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logs.SetSize(m.logWidth(), m.logHeight())
		return m, nil

	case QueueReadyMsg:
		m.queue.Drain()
		return m, WatchQueue(m.queue)

	case TickMsg:
		m.rt.Tick()
		if m.rt.Done() {
			m.status = "stream ended, press q to quit"
			return m, nil
		}
		return m, TickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		m.rt.Release()
		m.rt.Player.Stop()
		return m, tea.Quit
	case " ":
		m.rt.TogglePause()
	case "left":
		m.rt.Seek(-SeekStep)
	case "right":
		m.rt.Seek(SeekStep)
	case "p":
		m.sessionRequest(m.rt.RequestSessionPause)
	case "r":
		m.sessionRequest(m.rt.RequestSessionResume)
	case "x":
		m.sessionRequest(m.rt.RequestSessionRestart)
	case "d":
		m.rt.Release()
	}
	return m, nil
}

func (m *Model) sessionRequest(fn func() bool) {
	if !fn() {
		m.status = "no interactive ad running"
	}
}

// Status returns the transient status line.
func (m Model) Status() string { return m.status }
