// Package child implements the child side of the tab channel.
//
// A Child announces itself to its parent with LOADED, remembers the identity
// the parent hands back in HANDSHAKE_WITH_PARENT, and reuses that identity
// on the next LOADED so a reloaded parent can reconcile the tab in place.
// The identity is kept in a Store, which outlives the Child the same way
// session storage outlives a page.
package child
