package core

// Codec is the serialization primitive used to frame payloads. Decode must
// fail on text it cannot parse, including the empty string, so that a
// missing payload is never mistaken for a zero value.
type Codec interface {
	Encode(v any) (string, error)
	Decode(data string, v any) error
}
