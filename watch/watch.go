// Package watch polls child handles and closes tabs whose context is gone.
//
// The channel has no reliable close notification: ON_BEFORE_UNLOAD may never
// arrive. A Watcher therefore checks every open tab's handle on an interval
// and moves vanished tabs to StatusClosed, optionally evicting them.
package watch

import (
	"context"
	"time"

	"github.com/hupe1980/tabmesh/core"
	"github.com/hupe1980/tabmesh/logging"
	"github.com/hupe1980/tabmesh/registry"
)

// DefaultInterval is the polling interval when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Interval time.Duration
	// RemoveClosed evicts tabs from the registry once they are closed.
	RemoveClosed bool
	// OnDisconnect runs for every tab found gone.
	OnDisconnect func(tab core.Tab)
	Logger       logging.Logger
}

// Watcher polls a registry.
type Watcher struct {
	reg  *registry.Registry
	opts Options
}

// New creates a watcher for reg.
func New(reg *registry.Registry, optFns ...func(o *Options)) *Watcher {
	opts := Options{Interval: DefaultInterval, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Watcher{reg: reg, opts: opts}
}

// Poll checks every open tab once and returns the tabs it closed.
func (w *Watcher) Poll() []core.Tab {
	var gone []core.Tab
	for _, tab := range w.reg.Opened() {
		if tab.Handle == nil || !tab.Handle.Closed() {
			continue
		}
		if !w.reg.CloseTab(tab.ID) {
			continue
		}
		tab.Status = core.StatusClosed
		if w.opts.RemoveClosed {
			w.reg.Remove(tab.ID)
		}
		w.opts.Logger.Info("Child disconnected", "tab_id", tab.ID, "evicted", w.opts.RemoveClosed)
		if w.opts.OnDisconnect != nil {
			w.opts.OnDisconnect(tab)
		}
		gone = append(gone, tab)
	}
	return gone
}

// Run polls until ctx is cancelled and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Poll()
		}
	}
}
