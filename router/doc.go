// Package router interprets inbound channel messages for a parent context.
//
// A Router classifies each raw message by the first tag it contains, in the
// fixed precedence order of protocol.ParentInbound, and dispatches it to the
// matching handler:
//
//   - LOADED reconciles the announcing child with its registry entry and
//     replies with HANDSHAKE_WITH_PARENT
//   - CUSTOM and HANDSHAKE are decoded and passed to listeners
//   - ON_BEFORE_UNLOAD is decoded and passed to listeners
//
// Messages are processed one at a time. Decode failures surface as errors
// matching core.ErrMalformedPayload; registry lookup misses are dropped.
package router
