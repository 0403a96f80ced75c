package codec

import (
	"fmt"
	"strings"

	"github.com/hupe1980/tabmesh/core"
)

// ByName returns the codec registered under name ("json" or "cbor").
func ByName(name string) (core.Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON{}, nil
	case "cbor":
		return NewCBOR()
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}

// Default returns the JSON codec.
func Default() core.Codec { return JSON{} }
