package router

import (
	"strings"
	"sync"

	"github.com/hupe1980/tabmesh/core"
	"github.com/hupe1980/tabmesh/logging"
	"github.com/hupe1980/tabmesh/protocol"
	"github.com/hupe1980/tabmesh/registry"
)

// PayloadValidator checks a generically decoded LOADED payload before it is
// trusted. schema.Validator satisfies it.
type PayloadValidator interface {
	Validate(value any) error
}

// Options configures a Router.
type Options struct {
	// Origin, when set, must equal the origin of every accepted message.
	Origin string
	// ParentName is the parent's own window identity sent in handshakes.
	ParentName string
	// Codec decodes payloads. Defaults to the registry's codec.
	Codec core.Codec
	// Validator optionally checks LOADED payloads.
	Validator PayloadValidator
	// Logger defaults to a NoOpLogger.
	Logger logging.Logger
}

type handlerFunc func(env core.Envelope, tag string) error

type route struct {
	tag    string
	handle handlerFunc
}

// Router dispatches inbound messages for one registry.
type Router struct {
	mu        sync.Mutex
	reg       *registry.Registry
	opts      Options
	logger    logging.Logger
	routes    []route
	listeners listenerSet
}

// New creates a router bound to reg.
func New(reg *registry.Registry, optFns ...func(o *Options)) *Router {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = reg.Codec()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	r := &Router{reg: reg, opts: opts, logger: opts.Logger}

	handlers := map[string]handlerFunc{
		protocol.TagLoaded:         r.onLoaded,
		protocol.TagCustom:         r.onCustomMessage,
		protocol.TagHandshake:      r.onCustomMessage,
		protocol.TagOnBeforeUnload: r.onBeforeUnload,
	}
	for _, tag := range protocol.ParentInbound {
		r.routes = append(r.routes, route{tag: tag, handle: handlers[tag]})
	}
	return r
}

// Subscribe registers l for notifications and returns a function removing it.
// Listeners run synchronously while the router holds its processing lock and
// must not call OnNewTab or Notify themselves.
func (r *Router) Subscribe(l core.Listener) func() {
	return r.listeners.add(l)
}

// Notify delivers n to every subscribed listener. It waits for any message
// being processed, so listeners never run concurrently with each other.
// Listeners must not call Notify.
func (r *Router) Notify(n core.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners.notify(n)
}

// OnNewTab processes one inbound message. It reports false, without an
// error, when the message is not for this parent: empty data, no tabs
// registered, or an origin mismatch. A message carrying no known tag is
// accepted and ignored.
func (r *Router) OnNewTab(env core.Envelope) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if env.Data == "" || r.reg.Len() == 0 {
		return false, nil
	}
	if r.opts.Origin != "" && env.Origin != r.opts.Origin {
		r.logger.Debug("Inbound message rejected", "origin", env.Origin, "expected", r.opts.Origin)
		return false, nil
	}

	for _, rt := range r.routes {
		if !strings.Contains(env.Data, rt.tag) {
			continue
		}
		err := rt.handle(env, rt.tag)
		logging.LogInbound(r.logger, rt.tag, env.Origin, true, err)
		return true, err
	}
	r.logger.Debug("Inbound message ignored", "origin", env.Origin)
	return true, nil
}

// onLoaded reconciles the announcing child with its registry entry, first
// by the id it remembers, then by the message source, and answers with a
// handshake. Announcements that resolve to no entry are dropped.
func (r *Router) onLoaded(env core.Envelope, tag string) error {
	var info core.TabInfo
	if payload, _ := protocol.Split(env.Data, tag); payload != "" {
		if err := r.decodeTabInfo(env.Data, tag, &info); err != nil {
			return err
		}
	}

	var (
		tab   core.Tab
		found bool
	)
	if info.ID != "" {
		if tab, found = r.reg.Find(info.ID); found {
			if name := info.Label(); name != "" {
				tab, found = r.reg.Rename(info.ID, name)
			}
		}
	}
	if !found {
		tab, found = r.reg.FindBySource(env.Source)
	}
	if !found {
		r.logger.Debug("LOADED from unknown child dropped", "announced_id", info.ID, "origin", env.Origin)
		return nil
	}

	reply := core.HandshakePayload{ID: tab.ID, Name: tab.DisplayName(), ParentName: r.opts.ParentName}
	framed, err := protocol.Frame(r.opts.Codec, protocol.TagHandshakeWithParent, reply)
	if err != nil {
		return err
	}
	r.reg.SendMessage(tab, framed, info.IsSiteInsideFrame)

	n := core.NewNotification(core.NotificationHandshakeSent, tag)
	n.TabID = tab.ID
	n.TabInfo = info
	n.Origin = env.Origin
	r.listeners.notify(n)
	return nil
}

func (r *Router) decodeTabInfo(data, tag string, info *core.TabInfo) error {
	if r.opts.Validator != nil {
		var generic any
		if err := protocol.Decode(r.opts.Codec, data, tag, &generic); err != nil {
			return err
		}
		if err := r.opts.Validator.Validate(generic); err != nil {
			return core.NewMalformedPayloadError(tag, err)
		}
	}
	return protocol.Decode(r.opts.Codec, data, tag, info)
}

// onCustomMessage passes CUSTOM and HANDSHAKE payloads to listeners. The
// notification tag is the literal the message was framed with.
func (r *Router) onCustomMessage(env core.Envelope, tag string) error {
	literal := protocol.Resolve(env.Data, tag)
	var info any
	if err := protocol.Decode(r.opts.Codec, env.Data, literal, &info); err != nil {
		return err
	}
	r.listeners.notify(r.notification(core.NotificationCustomMessage, literal, env, info))
	return nil
}

// onBeforeUnload passes the unload announcement to listeners. The tab
// stays open until it is closed or found gone.
func (r *Router) onBeforeUnload(env core.Envelope, tag string) error {
	var info any
	if err := protocol.Decode(r.opts.Codec, env.Data, tag, &info); err != nil {
		return err
	}
	r.listeners.notify(r.notification(core.NotificationChildUnload, tag, env, info))
	return nil
}

func (r *Router) notification(typ core.NotificationType, tag string, env core.Envelope, info any) core.Notification {
	n := core.NewNotification(typ, tag)
	n.TabInfo = info
	n.Origin = env.Origin
	if tab, ok := r.reg.FindBySource(env.Source); ok {
		n.TabID = tab.ID
	}
	return n
}
