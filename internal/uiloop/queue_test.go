package uiloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DrainRunsInOrder(t *testing.T) {
	q := NewQueue()
	var got []int
	for i := range 5 {
		q.Post(func() { got = append(got, i) })
	}
	assert.Equal(t, 5, q.Len())

	n := q.Drain()

	assert.Equal(t, 5, n)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PostFromInsideDrain(t *testing.T) {
	q := NewQueue()
	var got []string
	q.Post(func() {
		got = append(got, "outer")
		q.Post(func() { got = append(got, "inner") })
	})

	assert.Equal(t, 2, q.Drain())
	assert.Equal(t, []string{"outer", "inner"}, got)
}

func TestQueue_PostNilIgnored(t *testing.T) {
	q := NewQueue()
	q.Post(nil)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PostNeverBlocks(t *testing.T) {
	q := NewQueue()
	for range 10_000 {
		q.Post(func() {})
	}
	assert.Equal(t, 10_000, q.Drain())
}

func TestQueue_RunExecutesOnOwner(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	ran := 0
	done := make(chan error)
	go func() { done <- q.Run(ctx) }()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() {
				mu.Lock()
				ran++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ran == 8
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestImmediate(t *testing.T) {
	ran := false
	Immediate.Post(func() { ran = true })
	assert.True(t, ran)
}

func TestContainer(t *testing.T) {
	c := NewContainer("video")
	assert.Equal(t, Visible, c.Visibility())

	var seen []Visibility
	c.OnChange(func(v Visibility) { seen = append(seen, v) })
	c.SetVisibility(Invisible)
	c.SetVisibility(Visible)
	c.SetVisibility(Gone)

	assert.Equal(t, Gone, c.Visibility())
	assert.Equal(t, []Visibility{Invisible, Visible, Gone}, c.History())
	assert.Equal(t, seen, c.History())
	assert.Equal(t, "video", c.Name())
	assert.Equal(t, "Gone", Gone.String())
}
