package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/node"
)

func TestNewScalar_RejectsWrongLength(t *testing.T) {
	spec := mustSpec(t, "s32")
	_, err := node.NewScalar(spec, []byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestNewScalar_SetsTagFromSpec(t *testing.T) {
	spec := mustSpec(t, "u8")
	v, err := node.NewScalar(spec, []byte{0x07})
	require.NoError(t, err)
	assert.Equal(t, spec.ID, v.Tag)
	assert.False(t, v.IsArray)
	assert.Equal(t, 1, v.Len())
}

func TestNewArray_RejectsMismatchedElement(t *testing.T) {
	spec := mustSpec(t, "u16")
	_, err := node.NewArray(spec, [][]byte{{0x00, 0x01}, {0x00}})
	assert.Error(t, err)
}

func TestNewArray_SetsIsArray(t *testing.T) {
	spec := mustSpec(t, "u16")
	v, err := node.NewArray(spec, [][]byte{{0x00, 0x01}, {0x00, 0x02}})
	require.NoError(t, err)
	assert.True(t, v.IsArray)
	assert.Equal(t, 2, v.Len())
}

func TestNewText_StoresText(t *testing.T) {
	v := node.NewText(format.TagString, "hello")
	assert.Equal(t, "hello", v.Text)
	assert.Equal(t, format.TagString, v.Tag)
}

func TestNewBinary_StoresRaw(t *testing.T) {
	v := node.NewBinary([]byte{0x01, 0x02})
	assert.Equal(t, []byte{0x01, 0x02}, v.Raw)
	assert.Equal(t, format.TagBinary, v.Tag)
}
