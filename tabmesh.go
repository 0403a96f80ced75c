// Package tabmesh provides a high-level façade for a parent context that
// opens child contexts and keeps them coordinated over a string-based
// cross-context channel. Most applications interact with this package by:
//  1. Creating a Parent via New() with an Opener for their host environment
//  2. Opening tabs with OpenNewTab and feeding inbound messages to OnMessage
//  3. Broadcasting to children and observing notifications via Subscribe
//
// The façade wires a registry.Registry, a router.Router and a watch.Watcher
// together. Protocol details live in the protocol package and the child side
// of the channel in the child package.
package tabmesh

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/tabmesh/codec"
	"github.com/hupe1980/tabmesh/config"
	"github.com/hupe1980/tabmesh/core"
	"github.com/hupe1980/tabmesh/logging"
	"github.com/hupe1980/tabmesh/protocol"
	"github.com/hupe1980/tabmesh/registry"
	"github.com/hupe1980/tabmesh/router"
	"github.com/hupe1980/tabmesh/schema"
	"github.com/hupe1980/tabmesh/watch"
)

// Options configures the Parent.
type Options struct {
	// Opener opens child contexts. Required by OpenNewTab only.
	Opener core.Opener

	// Origin, when set, is the exact origin inbound messages must carry.
	Origin string
	// TargetOrigin restricts outbound delivery. Defaults to core.AnyOrigin.
	TargetOrigin string
	// ParentName is the parent's own window identity sent in handshakes.
	ParentName string

	// Codec defaults to JSON.
	Codec core.Codec
	// Validator optionally checks LOADED payloads.
	Validator router.PayloadValidator

	// RemoveClosedTabs evicts tabs once they are closed.
	RemoveClosedTabs bool
	// HeartbeatInterval is the liveness polling interval used by Watch.
	HeartbeatInterval time.Duration

	// Logger defaults to NoOp logger if nil.
	Logger logging.Logger
}

// WithConfig converts a file configuration into an option.
func WithConfig(cfg config.Config) (func(o *Options), error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := codec.ByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	interval, err := cfg.Interval()
	if err != nil {
		return nil, err
	}
	return func(o *Options) {
		o.Origin = cfg.Origin
		o.TargetOrigin = cfg.TargetOrigin
		o.ParentName = cfg.ParentName
		o.Codec = c
		o.RemoveClosedTabs = cfg.RemoveClosedTabs
		o.HeartbeatInterval = interval
		if cfg.ValidatePayloads {
			o.Validator = schema.TabInfo()
		}
	}, nil
}

// Parent is the façade aggregating registry, router and watcher.
type Parent struct {
	opts    Options
	reg     *registry.Registry
	router  *router.Router
	watcher *watch.Watcher
}

// New creates a Parent. Unset options fall back to defaults.
func New(optFns ...func(o *Options)) *Parent {
	opts := Options{
		TargetOrigin:      core.AnyOrigin,
		Codec:             codec.Default(),
		HeartbeatInterval: watch.DefaultInterval,
		Logger:            logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	p := &Parent{opts: opts}
	p.reg = registry.New(func(o *registry.Options) {
		o.Codec = opts.Codec
		o.TargetOrigin = opts.TargetOrigin
		o.Logger = opts.Logger
	})
	p.router = router.New(p.reg, func(o *router.Options) {
		o.Origin = opts.Origin
		o.ParentName = opts.ParentName
		o.Codec = opts.Codec
		o.Validator = opts.Validator
		o.Logger = opts.Logger
	})
	p.watcher = watch.New(p.reg, func(o *watch.Options) {
		o.Interval = opts.HeartbeatInterval
		o.RemoveClosed = opts.RemoveClosedTabs
		o.OnDisconnect = p.notifyDisconnect
		o.Logger = opts.Logger
	})
	return p
}

// Registry exposes the underlying tab registry.
func (p *Parent) Registry() *registry.Registry { return p.reg }

// Router exposes the underlying protocol router.
func (p *Parent) Router() *router.Router { return p.router }

// OpenNewTab opens a child context and registers it under a fresh id
// before any message from it can arrive.
func (p *Parent) OpenNewTab(cfg core.OpenConfig) (core.Tab, error) {
	if p.opts.Opener == nil {
		return core.Tab{}, core.ErrNoOpener
	}
	id := core.NewID()
	h, err := p.opts.Opener.Open(cfg)
	if err != nil {
		return core.Tab{}, fmt.Errorf("open tab %q: %w", cfg.URL, err)
	}
	tab := core.NewTab(id, cfg.WindowName, cfg.URL, h)
	p.reg.AddNew(tab)
	p.opts.Logger.Info("Tab opened", "tab_id", id, "url", cfg.URL, "window_name", cfg.WindowName)
	return tab, nil
}

// OnMessage routes one inbound message. See router.Router.OnNewTab.
func (p *Parent) OnMessage(env core.Envelope) (bool, error) {
	return p.router.OnNewTab(env)
}

// Subscribe registers l for notifications and returns a function removing it.
func (p *Parent) Subscribe(l core.Listener) func() {
	return p.router.Subscribe(l)
}

// Tab returns the tab with id or core.ErrUnknownTab.
func (p *Parent) Tab(id string) (core.Tab, error) {
	tab, ok := p.reg.Find(id)
	if !ok {
		return core.Tab{}, fmt.Errorf("%w: %s", core.ErrUnknownTab, id)
	}
	return tab, nil
}

// Tabs returns every known tab.
func (p *Parent) Tabs() []core.Tab { return p.reg.All() }

// OpenedTabs returns the open tabs.
func (p *Parent) OpenedTabs() []core.Tab { return p.reg.Opened() }

// ClosedTabs returns the closed tabs that were not evicted.
func (p *Parent) ClosedTabs() []core.Tab { return p.reg.Closed() }

// CloseTab closes tab id, evicting it when RemoveClosedTabs is set. It
// reports whether the tab was closed by this call.
func (p *Parent) CloseTab(id string) bool {
	if !p.reg.CloseTab(id) {
		return false
	}
	if p.opts.RemoveClosedTabs {
		p.reg.Remove(id)
	}
	return true
}

// CloseAllTabs closes every open tab and returns their ids.
func (p *Parent) CloseAllTabs() []string {
	ids := p.reg.CloseAll()
	if p.opts.RemoveClosedTabs {
		for _, id := range ids {
			p.reg.Remove(id)
		}
	}
	return ids
}

// BroadcastAll sends msg to every open tab.
func (p *Parent) BroadcastAll(msg any, multiFrame bool) error {
	return p.reg.BroadcastAll(msg, multiFrame)
}

// BroadcastTo sends msg to tab id. Unknown ids are a no-op.
func (p *Parent) BroadcastTo(id string, msg any, multiFrame bool) error {
	return p.reg.BroadcastTo(id, msg, multiFrame)
}

// Disconnect tells every open child that the parent is going away.
func (p *Parent) Disconnect() {
	p.reg.SendToOpened(protocol.TagParentDisconnected, false)
}

// Poll checks child liveness once and returns the tabs found gone.
func (p *Parent) Poll() []core.Tab { return p.watcher.Poll() }

// Watch polls child liveness every HeartbeatInterval until ctx ends.
func (p *Parent) Watch(ctx context.Context) error { return p.watcher.Run(ctx) }

func (p *Parent) notifyDisconnect(tab core.Tab) {
	n := core.NewNotification(core.NotificationChildDisconnected, "")
	n.TabID = tab.ID
	n.TabInfo = core.TabInfo{ID: tab.ID, Name: tab.Name, WindowName: tab.WindowName}
	p.router.Notify(n)
}
