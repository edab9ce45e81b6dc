package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ssai-innovid/internal/player"
	"github.com/llehouerou/ssai-innovid/internal/render"
	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

func newTestModel(t *testing.T) (Model, *Runtime, *uiloop.Queue) {
	t.Helper()
	q := uiloop.NewQueue()
	logs := NewLogPane()
	rt, _, _ := newTestRuntime(t, testTimeline(), nil, q)
	rt.Wrapper.SetLogger(logs)
	require.NoError(t, rt.Start())
	m := New(rt, q, logs, "ssai-innovid")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return updated.(Model), rt, q
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SpaceTogglesPause(t *testing.T) {
	m, rt, _ := newTestModel(t)

	m.Update(key(" "))
	assert.Equal(t, player.Paused, rt.Player.State())

	m.Update(key(" "))
	assert.Equal(t, player.Playing, rt.Player.State())
}

func TestModel_ArrowsSeek(t *testing.T) {
	m, rt, _ := newTestModel(t)

	m.Update(key("right"))
	assert.Equal(t, SeekStep, rt.Player.Position())

	m.Update(key("left"))
	assert.Equal(t, time.Duration(0), rt.Player.Position())
}

func TestModel_SessionKeyWithoutSession(t *testing.T) {
	m, _, _ := newTestModel(t)

	updated, cmd := m.Update(key("p"))

	assert.Nil(t, cmd)
	assert.Equal(t, "no interactive ad running", updated.(Model).Status())
}

func TestModel_QuitReleasesAndStops(t *testing.T) {
	m, rt, _ := newTestModel(t)

	_, cmd := m.Update(key("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, player.Stopped, rt.Player.State())
}

func TestModel_QueueReadyDrainsAndRewatches(t *testing.T) {
	m, rt, q := newTestModel(t)
	q.Post(func() { rt.Video.SetVisibility(uiloop.Invisible) })

	_, cmd := m.Update(QueueReadyMsg{})

	assert.Equal(t, uiloop.Invisible, rt.Video.Visibility())
	assert.Equal(t, 0, q.Len())
	assert.NotNil(t, cmd)
}

func TestModel_TickStopsWhenDone(t *testing.T) {
	m, rt, _ := newTestModel(t)

	_, cmd := m.Update(TickMsg(time.Now()))
	assert.NotNil(t, cmd, "keeps ticking while playing")

	rt.Player.Stop()
	updated, cmd := m.Update(TickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.Contains(t, updated.(Model).Status(), "stream ended")
}

func TestModel_View(t *testing.T) {
	m, _, _ := newTestModel(t)

	view := render.Plain(m.View())

	assert.Contains(t, view, "ssai-innovid")
	assert.Contains(t, view, "0:00 / 5:00")
	assert.Contains(t, view, "video Visible")
	assert.Contains(t, view, "interactive none")
	assert.Contains(t, view, "Event: CUEPOINTS_CHANGED")
}

func TestModel_ViewBeforeSize(t *testing.T) {
	rt, _, _ := newTestRuntime(t, testTimeline(), nil, nil)
	m := New(rt, nil, nil, "x")
	assert.Empty(t, m.View())
}

func TestWatchQueue(t *testing.T) {
	assert.Nil(t, WatchQueue(nil))

	q := uiloop.NewQueue()
	cmd := WatchQueue(q)
	q.Post(func() {})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got := make(chan tea.Msg, 1)
	go func() { got <- cmd() }()

	select {
	case msg := <-got:
		assert.Equal(t, QueueReadyMsg{}, msg)
	case <-ctx.Done():
		t.Fatal("WatchQueue did not fire")
	}
}

func TestLogPane(t *testing.T) {
	p := NewLogPane()
	p.SetSize(20, 2)

	p.Log("Error: boom\nPlaying fallback Url\n")
	p.Log("\n")
	p.Log("Event: AD_BREAK_ENDED and more text")

	assert.Equal(t, []string{"Error: boom", "Playing fallback Url", "Event: AD_BREAK_ENDED and more text"}, p.Lines())

	view := p.View()
	assert.NotContains(t, view, "Error: boom", "only the newest lines fit")
	assert.Contains(t, view, "Playing fallback Url")
	assert.Contains(t, view, "Event: AD_BREAK_E...")
}

func TestLogPane_Bounded(t *testing.T) {
	p := NewLogPane()
	for range maxLogLines + 10 {
		p.Log("line")
	}
	p.Log("last")

	assert.Len(t, p.Lines(), maxLogLines)
	assert.Equal(t, "last", p.Lines()[maxLogLines-1])
	assert.True(t, strings.HasPrefix(p.Lines()[0], "line"))
}
