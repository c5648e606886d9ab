package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamyu1537/kbinxml/format"
)

func TestEncodingByCode_Known(t *testing.T) {
	cases := map[uint8]format.Encoding{
		0: format.EncodingShiftJIS,
		1: format.EncodingASCII,
		2: format.EncodingISO8859_1,
		3: format.EncodingEUCJP,
		4: format.EncodingUTF8,
	}

	for code, want := range cases {
		got, err := format.EncodingByCode(code)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncodingByCode_Unknown(t *testing.T) {
	_, err := format.EncodingByCode(5)
	assert.Error(t, err)
}

func TestUTF8_RoundTrip(t *testing.T) {
	raw, err := format.EncodingUTF8.Encode("hello, world")
	require.NoError(t, err)

	text, err := format.EncodingUTF8.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", text)
}

func TestASCII_RejectsHighBytes(t *testing.T) {
	_, err := format.EncodingASCII.Encode("caf\xc3\xa9")
	assert.Error(t, err)
}

func TestASCII_RoundTrip(t *testing.T) {
	raw, err := format.EncodingASCII.Encode("plain text")
	require.NoError(t, err)

	text, err := format.EncodingASCII.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "plain text", text)
}

func TestString(t *testing.T) {
	assert.Equal(t, "UTF-8", format.EncodingUTF8.String())
	assert.Equal(t, "Shift-JIS", format.EncodingShiftJIS.String())
}
