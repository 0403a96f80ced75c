package codec

import (
	"testing"

	"github.com/hupe1980/tabmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codecs(t *testing.T) map[string]core.Codec {
	t.Helper()
	c, err := NewCBOR()
	require.NoError(t, err)
	return map[string]core.Codec{"json": JSON{}, "cbor": c}
}

func TestRoundTrip_ProtocolPayloads(t *testing.T) {
	for name, c := range codecs(t) {
		t.Run(name, func(t *testing.T) {
			hs := core.HandshakePayload{ID: "42", Name: "w1", ParentName: "parent"}
			s, err := c.Encode(hs)
			require.NoError(t, err)
			var gotHS core.HandshakePayload
			require.NoError(t, c.Decode(s, &gotHS))
			assert.Equal(t, hs, gotHS)

			info := core.TabInfo{ID: "42", Name: "renamed", IsSiteInsideFrame: true}
			s, err = c.Encode(info)
			require.NoError(t, err)
			var gotInfo core.TabInfo
			require.NoError(t, c.Decode(s, &gotInfo))
			assert.Equal(t, info, gotInfo)

			s, err = c.Encode("ping")
			require.NoError(t, err)
			var str string
			require.NoError(t, c.Decode(s, &str))
			assert.Equal(t, "ping", str)
		})
	}
}

func TestDecode_Failures(t *testing.T) {
	for name, c := range codecs(t) {
		t.Run(name, func(t *testing.T) {
			var v any
			assert.Error(t, c.Decode("", &v))
			assert.Error(t, c.Decode("\xff\xff{not", &v))
		})
	}
}

func TestJSON_EncodeFailure(t *testing.T) {
	_, err := JSON{}.Encode(make(chan int))
	assert.Error(t, err)
}

func TestCBOR_GenericMapsAreStringKeyed(t *testing.T) {
	c, err := NewCBOR()
	require.NoError(t, err)
	s, err := c.Encode(map[string]any{"id": "1", "nested": map[string]any{"k": "v"}})
	require.NoError(t, err)

	var v any
	require.NoError(t, c.Decode(s, &v))
	m, ok := v.(map[string]any)
	require.True(t, ok, "got %T", v)
	_, ok = m["nested"].(map[string]any)
	assert.True(t, ok)
}

func TestByName(t *testing.T) {
	c, err := ByName("")
	require.NoError(t, err)
	assert.IsType(t, JSON{}, c)

	c, err = ByName("CBOR")
	require.NoError(t, err)
	assert.IsType(t, &CBOR{}, c)

	_, err = ByName("xml")
	assert.Error(t, err)
}
