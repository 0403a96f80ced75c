package codec

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/hupe1980/tabmesh/core"
)

var errEmpty = errors.New("empty payload")

// JSON encodes payloads as JSON text.
type JSON struct{}

var _ core.Codec = JSON{}

// Encode marshals v to JSON.
func (JSON) Encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode unmarshals data into v. Blank input is an error.
func (JSON) Decode(data string, v any) error {
	if strings.TrimSpace(data) == "" {
		return errEmpty
	}
	return json.Unmarshal([]byte(data), v)
}
