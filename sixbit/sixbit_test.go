package sixbit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamyu1537/kbinxml/sixbit"
)

func TestIsAlphabet(t *testing.T) {
	assert.True(t, sixbit.IsAlphabet("node_name"))
	assert.True(t, sixbit.IsAlphabet("ABC123"))
	assert.False(t, sixbit.IsAlphabet(""))
	assert.False(t, sixbit.IsAlphabet("has space"))
	assert.False(t, sixbit.IsAlphabet("has-dash"))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []string{"a", "node", "ABCxyz_:09", "x"}

	for _, s := range cases {
		packed, err := sixbit.Encode(s)
		require.NoError(t, err)

		// 1 length byte + ceil(len*6/8) packed bytes.
		assert.Equal(t, 1+sixbit.PackedLen(len(s)), len(packed))

		got, err := sixbit.Decode(len(s), packed[1:])
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestPackedLen(t *testing.T) {
	assert.Equal(t, 1, sixbit.PackedLen(1))
	assert.Equal(t, 3, sixbit.PackedLen(4))
	assert.Equal(t, 4, sixbit.PackedLen(5))
}

func TestEncode_RejectsEmptyAndOversized(t *testing.T) {
	_, err := sixbit.Encode("")
	assert.Error(t, err)

	_, err = sixbit.Encode(string(make([]byte, sixbit.MaxLength+1)))
	assert.Error(t, err)
}

func TestEncode_RejectsOutOfAlphabetCharacter(t *testing.T) {
	_, err := sixbit.Encode("bad name")
	assert.Error(t, err)
}

func TestDecode_RejectsShortPayload(t *testing.T) {
	_, err := sixbit.Decode(4, []byte{0x00})
	assert.Error(t, err)
}
