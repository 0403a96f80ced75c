package testutil

import (
	"time"

	"github.com/hupe1980/tabmesh/core"
)

// TabBuilder helps construct tabs with fluent chaining for tests.
// Example:
//
//	tab := NewTabBuilder("42").WindowName("w1").Handle(h).Build()
type TabBuilder struct {
	tab core.Tab
}

// NewTabBuilder creates a builder for an open tab with the given id.
func NewTabBuilder(id string) *TabBuilder {
	return &TabBuilder{tab: core.Tab{ID: id, Status: core.StatusOpen, OpenedAt: time.Now().UTC()}}
}

// Name sets the tab name (chainable).
func (b *TabBuilder) Name(name string) *TabBuilder {
	b.tab.Name = name
	return b
}

// WindowName sets the window name (chainable).
func (b *TabBuilder) WindowName(name string) *TabBuilder {
	b.tab.WindowName = name
	return b
}

// Handle binds the tab to h (chainable).
func (b *TabBuilder) Handle(h core.Handle) *TabBuilder {
	b.tab.Handle = h
	return b
}

// Closed marks the tab closed (chainable).
func (b *TabBuilder) Closed() *TabBuilder {
	b.tab.Status = core.StatusClosed
	return b
}

// Build returns the tab.
func (b *TabBuilder) Build() core.Tab { return b.tab }
