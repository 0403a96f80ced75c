package transport

import (
	"testing"

	"github.com/hupe1980/tabmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inbox struct{ got []core.Envelope }

func (i *inbox) listen(env core.Envelope) { i.got = append(i.got, env) }

func TestBus_ParentToChildAndBack(t *testing.T) {
	bus := NewBus()
	parent := bus.NewWindow("parent", "https://app.test")
	child := bus.Open(parent, "child", "https://child.test")

	var toParent, toChild inbox
	parent.Listen(toParent.listen)
	child.Listen(toChild.listen)

	require.NoError(t, child.PostMessage("down", core.AnyOrigin))
	require.NoError(t, child.OpenerLink().PostMessage("up", "https://app.test"))
	assert.Equal(t, 2, bus.Pending())
	assert.Empty(t, toChild.got, "delivery waits for Flush")

	assert.Equal(t, 2, bus.Flush())
	require.Len(t, toChild.got, 1)
	assert.Equal(t, core.Envelope{Data: "down", Source: parent, Origin: "https://app.test"}, toChild.got[0])

	require.Len(t, toParent.got, 1)
	assert.Equal(t, "up", toParent.got[0].Data)
	assert.Equal(t, "https://child.test", toParent.got[0].Origin)
	assert.True(t, toParent.got[0].Source == core.Window(child), "source is the parent's handle for the child")
}

func TestBus_TargetOriginMismatchDrops(t *testing.T) {
	bus := NewBus()
	parent := bus.NewWindow("parent", "https://app.test")
	child := bus.Open(parent, "child", "https://child.test")
	var in inbox
	child.Listen(in.listen)

	require.NoError(t, child.PostMessage("secret", "https://other.test"))
	assert.Equal(t, 0, bus.Flush())
	assert.Empty(t, in.got)
}

func TestBus_ClosedWindows(t *testing.T) {
	bus := NewBus()
	parent := bus.NewWindow("parent", "https://app.test")
	child := bus.Open(parent, "child", "https://child.test")
	frame := child.AddFrame("f")
	var in inbox
	child.Listen(in.listen)

	require.NoError(t, child.PostMessage("queued", core.AnyOrigin))
	require.NoError(t, child.Close())
	assert.True(t, frame.Closed(), "closing a window closes its frames")

	bus.Flush()
	assert.Empty(t, in.got, "queued messages to a closed window are dropped")
	assert.ErrorIs(t, child.PostMessage("late", core.AnyOrigin), ErrClosed)
}

func TestBus_FramesAndListenerReplies(t *testing.T) {
	bus := NewBus()
	parent := bus.NewWindow("parent", "https://app.test")
	child := bus.Open(parent, "child", "https://child.test")
	frame := child.AddFrame("f")
	require.Len(t, child.Frames(), 1)
	assert.Same(t, parent, frame.Opener())

	var in inbox
	parent.Listen(in.listen)
	frame.Listen(func(env core.Envelope) {
		_ = frame.OpenerLink().PostMessage("ack:"+env.Data, core.AnyOrigin)
	})

	require.NoError(t, child.Frames()[0].PostMessage("hi", core.AnyOrigin))
	assert.Equal(t, 2, bus.Flush())
	require.Len(t, in.got, 1)
	assert.Equal(t, "ack:hi", in.got[0].Data)
}

func TestBus_FlushIsBounded(t *testing.T) {
	bus := NewBus()
	a := bus.NewWindow("a", "https://a.test")
	b := bus.Open(a, "b", "https://b.test")
	a.Listen(func(env core.Envelope) { _ = b.PostMessage(env.Data, core.AnyOrigin) })
	b.Listen(func(env core.Envelope) { _ = b.OpenerLink().PostMessage(env.Data, core.AnyOrigin) })

	require.NoError(t, b.PostMessage("echo", core.AnyOrigin))
	assert.Equal(t, maxFlush, bus.Flush())
}

func TestOpener(t *testing.T) {
	bus := NewBus()
	parent := bus.NewWindow("parent", "https://app.test")
	var opened []string
	o := &Opener{Bus: bus, Parent: parent, OnOpen: func(w *Window, cfg core.OpenConfig) { opened = append(opened, w.Name()) }}

	h, err := o.Open(core.OpenConfig{URL: "https://child.test:8443/page?x=1", WindowName: "w1"})
	require.NoError(t, err)
	w := h.(*Window)
	assert.Equal(t, "https://child.test:8443", w.Origin())
	assert.Same(t, parent, w.Opener())
	assert.Equal(t, []string{"w1"}, opened)

	_, err = o.Open(core.OpenConfig{URL: "page.html"})
	assert.Error(t, err)
	_, err = o.Open(core.OpenConfig{URL: "://bad"})
	assert.Error(t, err)
}
