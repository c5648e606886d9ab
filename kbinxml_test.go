package kbinxml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamyu1537/kbinxml"
	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/node"
)

func buildSampleTree(t *testing.T) *kbinxml.Node {
	t.Helper()

	root := node.New("config")
	root.SetAttribute("ver", "2")

	s32Spec, err := format.ByName("s32")
	require.NoError(t, err)
	v, err := node.NewScalar(s32Spec, []byte{0x00, 0x00, 0x00, 0x2A})
	require.NoError(t, err)
	retries := node.New("retries")
	retries.Value = &v
	root.AddChild(retries)

	nameVal := node.NewText(format.TagString, "prod")
	name := node.New("name")
	name.Value = &nameVal
	root.AddChild(name)

	return root
}

func TestBinaryRoundTrip(t *testing.T) {
	root := buildSampleTree(t)

	raw, err := kbinxml.EncodeBinary(root, format.EncodingUTF8)
	require.NoError(t, err)

	got, enc, err := kbinxml.DecodeBinary(raw)
	require.NoError(t, err)
	assert.Equal(t, format.EncodingUTF8, enc)
	assert.Equal(t, "config", got.Key)

	v, ok := got.Attribute("ver")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.Len(t, got.Children, 2)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x2A}, got.Children[0].Value.Elems[0])
	assert.Equal(t, "prod", got.Children[1].Value.Text)
}

func TestTextRoundTrip(t *testing.T) {
	root := buildSampleTree(t)

	raw, err := kbinxml.EncodeText(root, format.EncodingUTF8)
	require.NoError(t, err)

	got, _, err := kbinxml.DecodeText(raw)
	require.NoError(t, err)
	assert.Equal(t, "config", got.Key)

	require.Len(t, got.Children, 2)
	assert.Equal(t, "42", mustDecodeElement(t, "s32", got.Children[0].Value.Elems[0]))
	assert.Equal(t, "prod", got.Children[1].Value.Text)
}

func TestBinaryAndTextAgreeOnTree(t *testing.T) {
	root := buildSampleTree(t)

	binRaw, err := kbinxml.EncodeBinary(root, format.EncodingUTF8)
	require.NoError(t, err)
	textRaw, err := kbinxml.EncodeText(root, format.EncodingUTF8)
	require.NoError(t, err)

	fromBin, _, err := kbinxml.DecodeBinary(binRaw)
	require.NoError(t, err)
	fromText, _, err := kbinxml.DecodeText(textRaw)
	require.NoError(t, err)

	assert.Equal(t, fromBin.Key, fromText.Key)
	assert.Equal(t, len(fromBin.Children), len(fromText.Children))
	assert.Equal(t, fromBin.Children[0].Value.Elems[0], fromText.Children[0].Value.Elems[0])
	assert.Equal(t, fromBin.Children[1].Value.Text, fromText.Children[1].Value.Text)
}

func mustDecodeElement(t *testing.T, typeName string, raw []byte) string {
	t.Helper()
	spec, err := format.ByName(typeName)
	require.NoError(t, err)
	text, err := node.DecodeElement(spec, raw)
	require.NoError(t, err)
	return text
}
