package core

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what happened on the channel.
type NotificationType string

const (
	// NotificationCustomMessage is emitted for CUSTOM and HANDSHAKE messages
	// from a child. Tag tells them apart.
	NotificationCustomMessage NotificationType = "custom_message"

	// NotificationChildUnload is emitted when a child announces it is about
	// to close or navigate away. The tab status is not changed.
	NotificationChildUnload NotificationType = "child_unload"

	// NotificationHandshakeSent is emitted after the parent replied to a
	// LOADED announcement.
	NotificationHandshakeSent NotificationType = "handshake_sent"

	// NotificationChildDisconnected is emitted when a child context is
	// found to be gone and its tab was closed.
	NotificationChildDisconnected NotificationType = "child_disconnected"
)

// Notification is the application-facing record of a routed message. After
// emission it should be treated as immutable.
//
// TabInfo holds the decoded payload. TabID is set when the message could be
// attributed to a registry entry.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Tag       string           `json:"tag,omitempty"`
	TabID     string           `json:"tabId,omitempty"`
	TabInfo   any              `json:"tabInfo,omitempty"`
	Origin    string           `json:"origin,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewNotification creates a notification stamped with a fresh id and the
// current UTC time.
func NewNotification(typ NotificationType, tag string) Notification {
	return Notification{
		ID:        NewID(),
		Type:      typ,
		Tag:       tag,
		Timestamp: time.Now().UTC(),
	}
}

// NewID generates a new unique identifier for tabs and notifications.
func NewID() string { return uuid.NewString() }

// Listener receives router notifications. Listeners run synchronously on the
// goroutine that processed the message.
type Listener interface {
	Notify(n Notification)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(n Notification)

// Notify calls f(n).
func (f ListenerFunc) Notify(n Notification) { f(n) }
