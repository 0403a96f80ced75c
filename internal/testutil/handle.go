package testutil

import (
	"sync"

	"github.com/hupe1980/tabmesh/core"
)

// Posted is one message delivered to a RecordingHandle.
type Posted struct {
	Message      string
	TargetOrigin string
}

// RecordingHandle is a core.Handle that records every message and close call.
type RecordingHandle struct {
	mu         sync.Mutex
	name       string
	posted     []Posted
	frames     []*RecordingHandle
	closeCalls int
	closed     bool
	postErr    error
}

var _ core.Handle = (*RecordingHandle)(nil)

// NewRecordingHandle creates an open handle.
func NewRecordingHandle(name string) *RecordingHandle {
	return &RecordingHandle{name: name}
}

// Name returns the label given at construction.
func (h *RecordingHandle) Name() string { return h.name }

// AddFrames attaches n frame handles and returns them.
func (h *RecordingHandle) AddFrames(n int) []*RecordingHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	added := make([]*RecordingHandle, 0, n)
	for i := 0; i < n; i++ {
		f := NewRecordingHandle(h.name + "-frame")
		h.frames = append(h.frames, f)
		added = append(added, f)
	}
	return added
}

// FailPosts makes every subsequent PostMessage return err.
func (h *RecordingHandle) FailPosts(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.postErr = err
}

// PostMessage records message.
func (h *RecordingHandle) PostMessage(message, targetOrigin string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.postErr != nil {
		return h.postErr
	}
	h.posted = append(h.posted, Posted{Message: message, TargetOrigin: targetOrigin})
	return nil
}

// Frames returns the attached frames.
func (h *RecordingHandle) Frames() []core.Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]core.Window, 0, len(h.frames))
	for _, f := range h.frames {
		out = append(out, f)
	}
	return out
}

// Close records the call and marks the handle closed.
func (h *RecordingHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeCalls++
	h.closed = true
	return nil
}

// Closed reports whether the handle is closed.
func (h *RecordingHandle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Vanish marks the handle closed without a Close call, as when the user
// closes the child window.
func (h *RecordingHandle) Vanish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

// CloseCalls returns how many times Close ran.
func (h *RecordingHandle) CloseCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closeCalls
}

// Messages returns the recorded message bodies.
func (h *RecordingHandle) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.posted))
	for _, p := range h.posted {
		out = append(out, p.Message)
	}
	return out
}

// Posts returns the recorded messages with their target origins.
func (h *RecordingHandle) Posts() []Posted {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Posted(nil), h.posted...)
}
