package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	n := NewNotification(NotificationCustomMessage, "CUSTOM")

	_, err := uuid.Parse(n.ID)
	require.NoError(t, err)
	assert.Equal(t, NotificationCustomMessage, n.Type)
	assert.Equal(t, "CUSTOM", n.Tag)
	assert.False(t, n.Timestamp.IsZero())
	assert.Equal(t, "UTC", n.Timestamp.Location().String())
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestListenerFunc(t *testing.T) {
	var got Notification
	var l Listener = ListenerFunc(func(n Notification) { got = n })
	l.Notify(Notification{ID: "n1"})
	assert.Equal(t, "n1", got.ID)
}

func TestMalformedPayloadError(t *testing.T) {
	cause := fmt.Errorf("unexpected end of input")
	err := NewMalformedPayloadError("LOADED", cause)

	assert.True(t, errors.Is(err, ErrMalformedPayload))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "LOADED")

	var mpe *MalformedPayloadError
	wrapped := fmt.Errorf("route: %w", err)
	require.True(t, errors.As(wrapped, &mpe))
	assert.Equal(t, "LOADED", mpe.Tag)
}

func TestTab_DisplayName(t *testing.T) {
	tab := NewTab("1", "w1", "https://example.test", nil)
	assert.True(t, tab.IsOpen())
	assert.Equal(t, "w1", tab.DisplayName())

	tab.Name = ""
	assert.Equal(t, "w1", tab.DisplayName())

	tab.Name = "renamed"
	assert.Equal(t, "renamed", tab.DisplayName())

	assert.Equal(t, "wn", TabInfo{WindowName: "wn"}.Label())
	assert.Equal(t, "n", TabInfo{Name: "n", WindowName: "wn"}.Label())
}
