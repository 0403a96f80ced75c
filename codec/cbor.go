package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/hupe1980/tabmesh/core"
)

// CBOR encodes payloads as CBOR carried in a Go string. Generic maps decode
// as map[string]any so decoded payloads stay JSON-compatible.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ core.Codec = (*CBOR)(nil)

// NewCBOR builds a CBOR codec with canonical encoding.
func NewCBOR() (*CBOR, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, err
	}
	return &CBOR{enc: enc, dec: dec}, nil
}

// Encode marshals v to CBOR.
func (c *CBOR) Encode(v any) (string, error) {
	b, err := c.enc.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode unmarshals data into v. Empty input is an error.
func (c *CBOR) Decode(data string, v any) error {
	if data == "" {
		return errEmpty
	}
	return c.dec.Unmarshal([]byte(data), v)
}
