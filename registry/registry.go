package registry

import (
	"sync"

	"github.com/hupe1980/tabmesh/codec"
	"github.com/hupe1980/tabmesh/core"
	"github.com/hupe1980/tabmesh/logging"
	"github.com/hupe1980/tabmesh/protocol"
)

// Options configures a Registry.
type Options struct {
	// Codec encodes broadcast payloads. Defaults to JSON.
	Codec core.Codec
	// TargetOrigin restricts outbound delivery. Defaults to core.AnyOrigin.
	TargetOrigin string
	// Logger defaults to a NoOpLogger.
	Logger logging.Logger
}

// Registry is the in-memory collection of tabs.
type Registry struct {
	mu     sync.RWMutex
	tabs   []*core.Tab
	opts   Options
	logger logging.Logger
}

// New creates an empty registry.
func New(optFns ...func(o *Options)) *Registry {
	opts := Options{
		Codec:        codec.Default(),
		TargetOrigin: core.AnyOrigin,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default()
	}
	if opts.TargetOrigin == "" {
		opts.TargetOrigin = core.AnyOrigin
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Registry{opts: opts, logger: opts.Logger}
}

// Codec returns the codec used for broadcasts.
func (r *Registry) Codec() core.Codec { return r.opts.Codec }

// AddNew appends tab. Uniqueness of tab.ID is the caller's responsibility.
func (r *Registry) AddNew(tab core.Tab) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := tab
	r.tabs = append(r.tabs, &t)
	return r
}

// All returns every tab in insertion order.
func (r *Registry) All() []core.Tab {
	return r.filter(func(*core.Tab) bool { return true })
}

// Opened returns tabs with StatusOpen.
func (r *Registry) Opened() []core.Tab {
	return r.filter(func(t *core.Tab) bool { return t.Status == core.StatusOpen })
}

// Closed returns tabs with StatusClosed.
func (r *Registry) Closed() []core.Tab {
	return r.filter(func(t *core.Tab) bool { return t.Status == core.StatusClosed })
}

func (r *Registry) filter(keep func(*core.Tab) bool) []core.Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Tab, 0, len(r.tabs))
	for _, t := range r.tabs {
		if keep(t) {
			out = append(out, *t)
		}
	}
	return out
}

// Len returns the number of tabs, open or closed.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tabs)
}

// Find returns the first tab with id.
func (r *Registry) Find(id string) (core.Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t := r.findLocked(id); t != nil {
		return *t, true
	}
	return core.Tab{}, false
}

// FindBySource returns the first tab whose handle is source.
func (r *Registry) FindBySource(source core.Window) (core.Tab, bool) {
	if source == nil {
		return core.Tab{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tabs {
		if t.Handle != nil && core.Window(t.Handle) == source {
			return *t, true
		}
	}
	return core.Tab{}, false
}

func (r *Registry) findLocked(id string) *core.Tab {
	for _, t := range r.tabs {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Rename sets Name and WindowName of tab id and returns the updated tab.
func (r *Registry) Rename(id, name string) (core.Tab, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.findLocked(id)
	if t == nil {
		return core.Tab{}, false
	}
	t.Name = name
	t.WindowName = name
	return *t, true
}

// CloseTab closes the handle of tab id and marks it closed. Unknown ids,
// tabs without a handle and tabs already closed are left alone, so the close
// primitive runs at most once per tab.
func (r *Registry) CloseTab(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.findLocked(id)
	if t == nil || t.Handle == nil || t.Status == core.StatusClosed {
		return false
	}
	r.closeLocked(t)
	return true
}

// CloseAll closes every open tab and returns the ids that were closed.
func (r *Registry) CloseAll() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var closed []string
	for _, t := range r.tabs {
		if t.Status != core.StatusOpen || t.Handle == nil {
			continue
		}
		r.closeLocked(t)
		closed = append(closed, t.ID)
	}
	return closed
}

func (r *Registry) closeLocked(t *core.Tab) {
	if !t.Handle.Closed() {
		if err := t.Handle.Close(); err != nil {
			r.logger.Warn("Closing tab handle failed", "tab_id", t.ID, "error", err.Error())
		}
	}
	t.Status = core.StatusClosed
}

// Remove deletes tab id permanently.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tabs {
		if t.ID == id {
			r.tabs = append(r.tabs[:i], r.tabs[i+1:]...)
			return true
		}
	}
	return false
}

// Reset drops every tab without closing live handles.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tabs = nil
}

// SendMessage delivers an already framed message to target. With multiFrame
// and at least one frame, every frame receives it; otherwise the top-level
// handle does. Transport errors are logged and absorbed.
func (r *Registry) SendMessage(target core.Tab, message string, multiFrame bool) {
	if target.Handle == nil {
		return
	}
	var windows []core.Window
	if frames := target.Handle.Frames(); multiFrame && len(frames) > 0 {
		windows = frames
	} else {
		windows = []core.Window{target.Handle}
	}
	sent := 0
	for _, w := range windows {
		if w == nil {
			continue
		}
		if err := w.PostMessage(message, r.opts.TargetOrigin); err != nil {
			logging.LogOutbound(r.logger, target.ID, sent, err)
			continue
		}
		sent++
	}
	logging.LogOutbound(r.logger, target.ID, sent, nil)
}

// BroadcastAll frames msg with PARENT_COMMUNICATED and sends it to every
// open tab.
func (r *Registry) BroadcastAll(msg any, multiFrame bool) error {
	framed, err := protocol.PrepareOutbound(r.opts.Codec, msg)
	if err != nil {
		return err
	}
	for _, t := range r.Opened() {
		r.SendMessage(t, framed, multiFrame)
	}
	return nil
}

// BroadcastTo frames msg like BroadcastAll and sends it to tab id only.
// Unknown ids are a no-op.
func (r *Registry) BroadcastTo(id string, msg any, multiFrame bool) error {
	framed, err := protocol.PrepareOutbound(r.opts.Codec, msg)
	if err != nil {
		return err
	}
	if t, ok := r.Find(id); ok {
		r.SendMessage(t, framed, multiFrame)
	}
	return nil
}

// SendToOpened sends an already framed message to every open tab.
func (r *Registry) SendToOpened(message string, multiFrame bool) {
	for _, t := range r.Opened() {
		r.SendMessage(t, message, multiFrame)
	}
}
