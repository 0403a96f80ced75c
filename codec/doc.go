// Package codec provides the serialization primitives used to frame message
// payloads. JSON is the default and matches what browser contexts exchange;
// CBOR is a compact alternative for hosts that control both ends of the
// channel.
package codec
