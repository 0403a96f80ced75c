package core

import "time"

// Status is the lifecycle state of a tab. The only transition is
// StatusOpen -> StatusClosed; a reopened child is a new Tab.
type Status string

const (
	// StatusOpen marks a tab whose context is believed to be alive.
	StatusOpen Status = "open"
	// StatusClosed marks a tab that was closed explicitly or vanished.
	StatusClosed Status = "closed"
)

// Tab is the registry record for one child context.
//
// ID is assigned by the parent when the tab is opened and never changes.
// Name and WindowName are labels refreshed on every handshake. Handle is the
// parent's reference to the child context; it may be nil when the tab was
// registered without a live context.
type Tab struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	WindowName string    `json:"windowName,omitempty" yaml:"windowName,omitempty"`
	URL        string    `json:"url,omitempty" yaml:"url,omitempty"`
	Handle     Handle    `json:"-" yaml:"-"`
	Status     Status    `json:"status" yaml:"status"`
	OpenedAt   time.Time `json:"openedAt" yaml:"openedAt"`
}

// NewTab creates an open tab bound to handle.
func NewTab(id, windowName, url string, handle Handle) Tab {
	return Tab{
		ID:         id,
		Name:       windowName,
		WindowName: windowName,
		URL:        url,
		Handle:     handle,
		Status:     StatusOpen,
		OpenedAt:   time.Now().UTC(),
	}
}

// IsOpen reports whether the tab is still considered open.
func (t Tab) IsOpen() bool { return t.Status == StatusOpen }

// DisplayName returns Name, falling back to WindowName.
func (t Tab) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.WindowName
}

// TabInfo is the identity a child announces in its LOADED message. A child
// that survived a parent reload resends the ID it was given earlier.
type TabInfo struct {
	ID                string `json:"id,omitempty" cbor:"id,omitempty"`
	Name              string `json:"name,omitempty" cbor:"name,omitempty"`
	WindowName        string `json:"windowName,omitempty" cbor:"windowName,omitempty"`
	ParentName        string `json:"parentName,omitempty" cbor:"parentName,omitempty"`
	IsSiteInsideFrame bool   `json:"isSiteInsideFrame,omitempty" cbor:"isSiteInsideFrame,omitempty"`
}

// Label returns Name, falling back to WindowName.
func (i TabInfo) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return i.WindowName
}

// HandshakePayload is the parent's reply to a LOADED announcement.
type HandshakePayload struct {
	ID         string `json:"id" cbor:"id"`
	Name       string `json:"name" cbor:"name"`
	ParentName string `json:"parentName" cbor:"parentName"`
}

// ChildMessage wraps an application payload a child sends to its parent.
type ChildMessage struct {
	ID  string `json:"id,omitempty" cbor:"id,omitempty"`
	Msg any    `json:"msg,omitempty" cbor:"msg,omitempty"`
}

// OpenConfig describes a child context the parent asks the host to open.
type OpenConfig struct {
	URL            string
	WindowName     string
	WindowFeatures string
}
