package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/node"
	"github.com/kamyu1537/kbinxml/section"
)

func mustSpec(t *testing.T, name string) format.TypeSpec {
	t.Helper()
	spec, err := format.ByName(name)
	require.NoError(t, err)
	return spec
}

// Scenario 1: scalar round-trip, <n __type="s32">-1</n>.
func TestScenario_ScalarRoundTrip(t *testing.T) {
	spec := mustSpec(t, "s32")
	elem := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	v, err := node.NewScalar(spec, elem)
	require.NoError(t, err)

	n := node.New("n")
	n.Value = &v

	raw, err := node.EncodeBinary(n, format.EncodingUTF8)
	require.NoError(t, err)

	header, err := section.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, section.CompressionSixbit, header.Compression)

	// First node-stream byte after the header is the s32 type tag (2).
	assert.Equal(t, byte(spec.ID), raw[section.HeaderSize])

	got, _, err := node.DecodeBinary(raw)
	require.NoError(t, err)
	assert.Equal(t, "n", got.Key)
	require.NotNil(t, got.Value)
	assert.Equal(t, elem, got.Value.Elems[0])
}

// Scenario 2: attribute ordering, <x a="1" b="2"/>.
func TestScenario_AttributeOrdering(t *testing.T) {
	n := node.New("x")
	n.SetAttribute("a", "1")
	n.SetAttribute("b", "2")

	raw, err := node.EncodeBinary(n, format.EncodingUTF8)
	require.NoError(t, err)

	got, _, err := node.DecodeBinary(raw)
	require.NoError(t, err)

	require.Len(t, got.Attributes, 2)
	assert.Equal(t, "a", got.Attributes[0].Name)
	assert.Equal(t, "1", got.Attributes[0].Value)
	assert.Equal(t, "b", got.Attributes[1].Name)
	assert.Equal(t, "2", got.Attributes[1].Value)
}

// Scenario 3: packed short values, three u8 siblings 10,20,30.
func TestScenario_PackedShortValues(t *testing.T) {
	spec := mustSpec(t, "u8")
	parent := node.New("parent")

	for _, b := range []byte{10, 20, 30} {
		v, err := node.NewScalar(spec, []byte{b})
		require.NoError(t, err)
		child := node.New("v")
		child.Value = &v
		parent.AddChild(child)
	}

	raw, err := node.EncodeBinary(parent, format.EncodingUTF8)
	require.NoError(t, err)

	got, _, err := node.DecodeBinary(raw)
	require.NoError(t, err)
	require.Len(t, got.Children, 3)
	assert.Equal(t, byte(10), got.Children[0].Value.Elems[0][0])
	assert.Equal(t, byte(20), got.Children[1].Value.Elems[0][0])
	assert.Equal(t, byte(30), got.Children[2].Value.Elems[0][0])
}

// Scenario 4: array length, <arr __type="u16" __count="3">1 2 3</arr>.
func TestScenario_ArrayLength(t *testing.T) {
	spec := mustSpec(t, "u16")
	v, err := node.NewArray(spec, [][]byte{
		{0x00, 0x01},
		{0x00, 0x02},
		{0x00, 0x03},
	})
	require.NoError(t, err)

	n := node.New("arr")
	n.Value = &v

	raw, err := node.EncodeBinary(n, format.EncodingUTF8)
	require.NoError(t, err)

	got, _, err := node.DecodeBinary(raw)
	require.NoError(t, err)
	require.True(t, got.Value.IsArray)
	require.Len(t, got.Value.Elems, 3)
	assert.Equal(t, []byte{0x00, 0x01}, got.Value.Elems[0])
	assert.Equal(t, []byte{0x00, 0x02}, got.Value.Elems[1])
	assert.Equal(t, []byte{0x00, 0x03}, got.Value.Elems[2])
}

// Scenario 5: IP4, <ip __type="ip4">127.0.0.1</ip>.
func TestScenario_IP4(t *testing.T) {
	spec := mustSpec(t, "ip4")
	raw, err := node.EncodeElement(spec, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7F, 0x00, 0x00, 0x01}, raw)

	text, err := node.DecodeElement(spec, raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", text)
}

// Scenario 6: mixed tree, <root><a __type="str">hi</a><b __type="bool">1</b></root>.
func TestScenario_MixedTree(t *testing.T) {
	root := node.New("root")

	aVal := node.NewText(format.TagString, "hi")
	a := node.New("a")
	a.Value = &aVal
	root.AddChild(a)

	boolSpec := mustSpec(t, "bool")
	bVal, err := node.NewScalar(boolSpec, []byte{0x01})
	require.NoError(t, err)
	b := node.New("b")
	b.Value = &bVal
	root.AddChild(b)

	raw, err := node.EncodeBinary(root, format.EncodingUTF8)
	require.NoError(t, err)

	got, _, err := node.DecodeBinary(raw)
	require.NoError(t, err)
	require.Len(t, got.Children, 2)

	assert.Equal(t, "a", got.Children[0].Key)
	assert.Equal(t, "hi", got.Children[0].Value.Text)

	assert.Equal(t, "b", got.Children[1].Key)
	assert.Equal(t, byte(1), got.Children[1].Value.Elems[0][0])
}

func TestDecodeBinary_InvalidBoolean(t *testing.T) {
	boolSpec := mustSpec(t, "bool")
	v, err := node.NewScalar(boolSpec, []byte{0x05})
	require.NoError(t, err)

	n := node.New("b")
	n.Value = &v

	raw, err := node.EncodeBinary(n, format.EncodingUTF8)
	require.NoError(t, err)

	_, _, err = node.DecodeBinary(raw)
	assert.Error(t, err)
}

func TestEncodeBinary_FallsBackToRawWhenIdentifierNotSixbit(t *testing.T) {
	n := node.New("not sixbit!")

	raw, err := node.EncodeBinary(n, format.EncodingUTF8)
	require.NoError(t, err)

	header, err := section.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, section.CompressionRaw, header.Compression)

	got, _, err := node.DecodeBinary(raw)
	require.NoError(t, err)
	assert.Equal(t, "not sixbit!", got.Key)
}
