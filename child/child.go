package child

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/tabmesh/codec"
	"github.com/hupe1980/tabmesh/core"
	"github.com/hupe1980/tabmesh/logging"
	"github.com/hupe1980/tabmesh/protocol"
)

// ErrNoParent is returned when the child has no window to reach its parent.
var ErrNoParent = errors.New("child: no parent window")

// DefaultHandshakeExpiry bounds WaitReady when no expiry is configured.
const DefaultHandshakeExpiry = 5 * time.Second

// Options configures a Child.
type Options struct {
	// Codec must match the parent's. Defaults to JSON.
	Codec core.Codec
	// Origin restricts outbound delivery and, when set, inbound acceptance.
	Origin string
	// IsSiteInsideFrame asks the parent to address every frame of the child.
	IsSiteInsideFrame bool
	// HandshakeExpiry bounds WaitReady. Defaults to DefaultHandshakeExpiry.
	HandshakeExpiry time.Duration
	// Store keeps the identity across reloads. Defaults to a MemoryStore.
	Store Store
	// Logger defaults to a NoOpLogger.
	Logger logging.Logger

	OnReady               func(info core.TabInfo)
	OnParentDisconnect    func()
	OnParentCommunication func(msg any)
}

// Child is the child-side protocol endpoint.
type Child struct {
	parent core.Window
	opts   Options
	logger logging.Logger

	mu           sync.Mutex
	info         core.TabInfo
	disconnected bool
	ready        chan struct{}
	readyOnce    sync.Once
}

// New creates a child that reaches its parent through parent.
func New(parent core.Window, optFns ...func(o *Options)) *Child {
	opts := Options{
		Codec:           codec.Default(),
		HandshakeExpiry: DefaultHandshakeExpiry,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default()
	}
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.HandshakeExpiry <= 0 {
		opts.HandshakeExpiry = DefaultHandshakeExpiry
	}

	c := &Child{parent: parent, opts: opts, logger: opts.Logger, ready: make(chan struct{})}
	if info, ok := opts.Store.Load(); ok {
		c.info = info
	}
	return c
}

// Init announces the child with LOADED. A child that already holds an id
// sends it along so the parent can reconcile the tab.
func (c *Child) Init() error {
	c.mu.Lock()
	info := c.info
	c.mu.Unlock()

	var payload any
	switch {
	case info.ID != "":
		info.IsSiteInsideFrame = c.opts.IsSiteInsideFrame
		payload = info
	case c.opts.IsSiteInsideFrame:
		payload = core.TabInfo{IsSiteInsideFrame: true}
	}
	msg, err := protocol.Frame(c.opts.Codec, protocol.TagLoaded, payload)
	if err != nil {
		return err
	}
	return c.post(msg)
}

// OnMessage handles one message from the parent. It reports false when the
// message is empty or from an unexpected origin.
func (c *Child) OnMessage(env core.Envelope) (bool, error) {
	if env.Data == "" {
		return false, nil
	}
	if c.opts.Origin != "" && env.Origin != c.opts.Origin {
		return false, nil
	}
	tag, ok := protocol.Classify(env.Data, protocol.ChildInbound)
	if !ok {
		return true, nil
	}

	var err error
	switch tag {
	case protocol.TagHandshakeWithParent:
		err = c.onHandshake(env.Data)
	case protocol.TagParentDisconnected:
		c.onParentDisconnected()
	case protocol.TagParentCommunicated:
		err = c.onParentCommunicated(env.Data)
	}
	logging.LogInbound(c.logger, tag, env.Origin, true, err)
	return true, err
}

func (c *Child) onHandshake(data string) error {
	var hs core.HandshakePayload
	if err := protocol.Decode(c.opts.Codec, data, protocol.TagHandshakeWithParent, &hs); err != nil {
		return err
	}
	info := core.TabInfo{
		ID:                hs.ID,
		Name:              hs.Name,
		ParentName:        hs.ParentName,
		IsSiteInsideFrame: c.opts.IsSiteInsideFrame,
	}
	c.mu.Lock()
	c.info = info
	c.disconnected = false
	c.mu.Unlock()

	if err := c.opts.Store.Save(info); err != nil {
		return fmt.Errorf("child: save identity: %w", err)
	}
	c.readyOnce.Do(func() { close(c.ready) })
	if c.opts.OnReady != nil {
		c.opts.OnReady(info)
	}
	return nil
}

func (c *Child) onParentDisconnected() {
	c.mu.Lock()
	c.disconnected = true
	c.mu.Unlock()
	if c.opts.OnParentDisconnect != nil {
		c.opts.OnParentDisconnect()
	}
}

func (c *Child) onParentCommunicated(data string) error {
	var msg any
	if err := protocol.Decode(c.opts.Codec, data, protocol.TagParentCommunicated, &msg); err != nil {
		return err
	}
	if c.opts.OnParentCommunication != nil {
		c.opts.OnParentCommunication(msg)
	}
	return nil
}

// SendMessageToParent sends msg to the parent framed with CUSTOM.
func (c *Child) SendMessageToParent(msg any) error {
	framed, err := protocol.Frame(c.opts.Codec, protocol.TagCustom, core.ChildMessage{ID: c.Info().ID, Msg: msg})
	if err != nil {
		return err
	}
	return c.post(framed)
}

// Unload tells the parent the child is about to close or navigate away.
func (c *Child) Unload() error {
	info := c.Info()
	framed, err := protocol.Frame(c.opts.Codec, protocol.TagOnBeforeUnload, core.TabInfo{ID: info.ID, Name: info.Name})
	if err != nil {
		return err
	}
	return c.post(framed)
}

// Info returns the identity received from the parent.
func (c *Child) Info() core.TabInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Disconnected reports whether the parent announced PARENT_DISCONNECTED
// since the last handshake.
func (c *Child) Disconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

// Ready is closed once the first handshake arrives.
func (c *Child) Ready() <-chan struct{} { return c.ready }

// WaitReady blocks until the handshake arrives, ctx ends, or the handshake
// expiry passes.
func (c *Child) WaitReady(ctx context.Context) error {
	timer := time.NewTimer(c.opts.HandshakeExpiry)
	defer timer.Stop()
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return core.ErrHandshakeExpired
	}
}

func (c *Child) post(msg string) error {
	if c.parent == nil {
		return ErrNoParent
	}
	target := c.opts.Origin
	if target == "" {
		target = core.AnyOrigin
	}
	return c.parent.PostMessage(msg, target)
}
