package protocol

import (
	"strings"

	"github.com/hupe1980/tabmesh/core"
)

// Frame encodes payload and prefixes it with tag. A nil payload frames the
// bare tag.
func Frame(c core.Codec, tag string, payload any) (string, error) {
	if payload == nil {
		return tag, nil
	}
	encoded, err := c.Encode(payload)
	if err != nil {
		return "", core.NewMalformedPayloadError(tag, err)
	}
	return tag + encoded, nil
}

// Decode splits data after tag and decodes the remainder into v.
func Decode(c core.Codec, data, tag string, v any) error {
	payload, _ := Split(data, tag)
	if err := c.Decode(payload, v); err != nil {
		return core.NewMalformedPayloadError(tag, err)
	}
	return nil
}

// PrepareOutbound encodes a generic parent message and prefixes it with
// PARENT_COMMUNICATED unless the encoded text already carries that tag.
func PrepareOutbound(c core.Codec, msg any) (string, error) {
	encoded, err := c.Encode(msg)
	if err != nil {
		return "", core.NewMalformedPayloadError(TagParentCommunicated, err)
	}
	if strings.Contains(encoded, TagParentCommunicated) {
		return encoded, nil
	}
	return TagParentCommunicated + encoded, nil
}
