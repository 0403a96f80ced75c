package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/tabmesh/core"
	"github.com/hupe1980/tabmesh/internal/testutil"
	"github.com/hupe1980/tabmesh/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll_ClosesVanishedTabs(t *testing.T) {
	alive, gone := testutil.NewRecordingHandle("alive"), testutil.NewRecordingHandle("gone")
	reg := registry.New().
		AddNew(testutil.NewTabBuilder("1").Handle(alive).Build()).
		AddNew(testutil.NewTabBuilder("2").Handle(gone).Build()).
		AddNew(testutil.NewTabBuilder("3").Build())

	var disconnected []string
	w := New(reg, func(o *Options) {
		o.OnDisconnect = func(tab core.Tab) { disconnected = append(disconnected, tab.ID) }
	})

	assert.Empty(t, w.Poll())

	gone.Vanish()
	closed := w.Poll()
	require.Len(t, closed, 1)
	assert.Equal(t, "2", closed[0].ID)
	assert.Equal(t, core.StatusClosed, closed[0].Status)
	assert.Equal(t, []string{"2"}, disconnected)
	assert.Equal(t, 0, gone.CloseCalls())

	tab, ok := reg.Find("2")
	require.True(t, ok)
	assert.Equal(t, core.StatusClosed, tab.Status)

	assert.Empty(t, w.Poll(), "closed tabs are reported once")
}

func TestPoll_RemoveClosed(t *testing.T) {
	h := testutil.NewRecordingHandle("h")
	reg := registry.New().AddNew(testutil.NewTabBuilder("1").Handle(h).Build())
	w := New(reg, func(o *Options) { o.RemoveClosed = true })

	h.Vanish()
	require.Len(t, w.Poll(), 1)
	assert.Equal(t, 0, reg.Len())
}

func TestRun_StopsOnCancel(t *testing.T) {
	h := testutil.NewRecordingHandle("h")
	reg := registry.New().AddNew(testutil.NewTabBuilder("1").Handle(h).Build())

	var mu sync.Mutex
	var seen []string
	w := New(reg, func(o *Options) {
		o.Interval = 5 * time.Millisecond
		o.OnDisconnect = func(tab core.Tab) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, tab.ID)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	h.Vanish()
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_Defaults(t *testing.T) {
	w := New(registry.New(), func(o *Options) { o.Interval = 0; o.Logger = nil })
	assert.Equal(t, DefaultInterval, w.opts.Interval)
	assert.NotNil(t, w.opts.Logger)
}
