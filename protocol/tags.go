package protocol

import "strings"

// Tag literals identifying message intent.
const (
	TagLoaded              = "LOADED"
	TagCustom              = "CUSTOM"
	TagHandshake           = "HANDSHAKE"
	TagHandshakeWithParent = "HANDSHAKE_WITH_PARENT"
	TagOnBeforeUnload      = "ON_BEFORE_UNLOAD"
	TagParentCommunicated  = "PARENT_COMMUNICATED"
	TagParentDisconnected  = "PARENT_DISCONNECTED"
)

// ParentInbound is the precedence order for messages received by a parent.
// LOADED must stay ahead of HANDSHAKE.
var ParentInbound = []string{TagLoaded, TagCustom, TagHandshake, TagOnBeforeUnload}

// ChildInbound is the precedence order for messages received by a child.
var ChildInbound = []string{TagHandshakeWithParent, TagParentDisconnected, TagParentCommunicated}

// variants lists more specific literals that contain a tag. A message
// classified under the tag is split after the variant when one is present.
var variants = map[string][]string{
	TagHandshake: {TagHandshakeWithParent},
}

// Classify returns the first tag in order that data contains.
func Classify(data string, order []string) (string, bool) {
	for _, tag := range order {
		if strings.Contains(data, tag) {
			return tag, true
		}
	}
	return "", false
}

// Resolve returns the literal a message classified under tag was framed
// with. A variant counts only when it starts where tag first occurs, so a
// variant quoted inside the payload is ignored.
func Resolve(data, tag string) string {
	i := strings.Index(data, tag)
	if i < 0 {
		return tag
	}
	rest := data[i:]
	for _, v := range variants[tag] {
		if strings.HasPrefix(rest, v) {
			return v
		}
	}
	return tag
}

// Split returns everything after the first occurrence of tag.
func Split(data, tag string) (string, bool) {
	_, payload, ok := strings.Cut(data, tag)
	return payload, ok
}
