// Package registry holds the parent's authoritative list of child tabs.
//
// The Registry keeps tabs in insertion order and is safe for concurrent
// access: every mutation goes through a single mutex, so protocol events for
// the same tab id are never applied concurrently. Query methods return
// copies reflecting the state at call time.
//
// Send operations are fire and forget. A tab without a usable handle is
// skipped silently, since a handle can vanish between lookup and send.
package registry
