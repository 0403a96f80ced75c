package transport

import (
	"errors"
	"net/url"
	"slices"
	"sync"

	"github.com/hupe1980/tabmesh/core"
)

// ErrClosed is returned when posting to a closed window.
var ErrClosed = errors.New("transport: window closed")

// maxFlush bounds a single Flush so that two endpoints echoing each other
// cannot spin forever.
const maxFlush = 10000

type delivery struct {
	to  *Window
	env core.Envelope
}

// Bus queues messages between windows.
type Bus struct {
	mu    sync.Mutex
	queue []delivery
}

// NewBus creates an empty bus.
func NewBus() *Bus { return &Bus{} }

// NewWindow creates a top-level window without an opener.
func (b *Bus) NewWindow(name, origin string) *Window {
	return &Window{bus: b, name: name, origin: origin}
}

// Open creates a child window whose opener is parent.
func (b *Bus) Open(parent *Window, name, origin string) *Window {
	w := b.NewWindow(name, origin)
	w.opener = parent
	return w
}

func (b *Bus) enqueue(to *Window, env core.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, delivery{to: to, env: env})
}

// Pending returns the number of queued deliveries.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Flush delivers queued messages, including ones queued by listeners
// during the flush, and returns how many were dispatched.
func (b *Bus) Flush() int {
	n := 0
	for n < maxFlush {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return n
		}
		d := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		d.to.dispatch(d.env)
		n++
	}
	return n
}

// Window is one simulated browsing context. It implements core.Handle.
type Window struct {
	bus    *Bus
	name   string
	origin string
	opener *Window

	mu        sync.Mutex
	frames    []*Window
	listeners []func(core.Envelope)
	closed    bool
}

var _ core.Handle = (*Window)(nil)

// Name returns the window name.
func (w *Window) Name() string { return w.name }

// Origin returns the window origin.
func (w *Window) Origin() string { return w.origin }

// Opener returns the window that opened w, or nil.
func (w *Window) Opener() *Window { return w.opener }

// AddFrame attaches a frame sharing w's origin and opener.
func (w *Window) AddFrame(name string) *Window {
	f := w.bus.Open(w.opener, name, w.origin)
	w.mu.Lock()
	w.frames = append(w.frames, f)
	w.mu.Unlock()
	return f
}

// Listen registers fn for messages delivered to w.
func (w *Window) Listen(fn func(core.Envelope)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// PostMessage queues message for w as if sent by its opener. A
// targetOrigin other than core.AnyOrigin that does not match w's origin
// drops the message silently.
func (w *Window) PostMessage(message, targetOrigin string) error {
	var source core.Window
	origin := ""
	if w.opener != nil {
		source = w.opener
		origin = w.opener.origin
	}
	return w.bus.post(source, origin, w, message, targetOrigin)
}

// OpenerLink returns the window w uses to reach its opener, or nil when w
// has none.
func (w *Window) OpenerLink() core.Window {
	if w.opener == nil {
		return nil
	}
	return &link{from: w, to: w.opener}
}

// Frames returns the attached frames.
func (w *Window) Frames() []core.Window {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]core.Window, 0, len(w.frames))
	for _, f := range w.frames {
		out = append(out, f)
	}
	return out
}

// Close closes w and its frames.
func (w *Window) Close() error {
	w.mu.Lock()
	frames := append([]*Window(nil), w.frames...)
	w.closed = true
	w.mu.Unlock()
	for _, f := range frames {
		_ = f.Close()
	}
	return nil
}

// Closed reports whether w was closed.
func (w *Window) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Window) dispatch(env core.Envelope) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	listeners := slices.Clone(w.listeners)
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(env)
	}
}

func (b *Bus) post(source core.Window, origin string, to *Window, message, targetOrigin string) error {
	if to.Closed() {
		return ErrClosed
	}
	if targetOrigin != core.AnyOrigin && targetOrigin != to.origin {
		return nil
	}
	b.enqueue(to, core.Envelope{Data: message, Source: source, Origin: origin})
	return nil
}

// link is a child's view of its opener.
type link struct {
	from *Window
	to   *Window
}

func (l *link) PostMessage(message, targetOrigin string) error {
	return l.from.bus.post(l.from, l.from.origin, l.to, message, targetOrigin)
}

// Opener opens child windows on a bus and implements core.Opener.
type Opener struct {
	Bus    *Bus
	Parent *Window
	// OnOpen runs for every opened child, typically to start its endpoint.
	OnOpen func(child *Window, cfg core.OpenConfig)
}

var _ core.Opener = (*Opener)(nil)

// Open creates a child window named after cfg.WindowName with the origin
// of cfg.URL.
func (o *Opener) Open(cfg core.OpenConfig) (core.Handle, error) {
	origin, err := originOf(cfg.URL)
	if err != nil {
		return nil, err
	}
	child := o.Bus.Open(o.Parent, cfg.WindowName, origin)
	if o.OnOpen != nil {
		o.OnOpen(child, cfg)
	}
	return child, nil
}

func originOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("transport: url must be absolute")
	}
	return u.Scheme + "://" + u.Host, nil
}
