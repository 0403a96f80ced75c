// Package core provides the foundational domain types and interfaces shared by
// every tabmesh component. It defines the abstractions for:
//
//   - Tabs (child contexts opened and tracked by a parent context)
//   - Windows and Handles (the opaque transport primitive used to reach a tab)
//   - Envelopes (raw inbound messages delivered by the host environment)
//   - Codecs (the serialization primitive turning payloads into text)
//   - Notifications (application-facing events emitted by the router)
//
// The package intentionally keeps protocol framing, registry storage and
// routing out of scope, exposing small interfaces so hosts can plug in their
// own transports and serializers.
package core
