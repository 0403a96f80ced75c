// Package protocol owns the framing convention of the cross-context channel.
//
// Every message on the wire is a tag literal immediately followed by the
// encoded payload, with no delimiter. Tags are matched as substrings in a
// fixed precedence order, never by position, so the order lists in this
// package are part of the wire contract.
package protocol
