package node

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/transform"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
)

// Reserved XML attribute names carrying kbin-specific metadata (spec §4.7).
const (
	attrType  = "__type"
	attrCount = "__count"
	attrSize  = "__size"
)

// EncodeText renders root as text XML, the kbin library's "black box"
// text syntax: encoding/xml's Encoder does the actual token emission,
// and this package supplies only the reserved-attribute and text-value
// mapping on top of it (spec §4.7).
func EncodeText(root *Node, enc format.Encoding) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="%s"?>`, xmlCharsetName(enc)))
	buf.WriteByte('\n')

	xe := xml.NewEncoder(&buf)
	xe.Indent("", "  ")

	if err := encodeXMLNode(xe, root); err != nil {
		return nil, err
	}
	if err := xe.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrEncodingError, err)
	}

	out, err := enc.Encode(buf.String())
	if err != nil {
		return nil, err
	}

	return out, nil
}

func encodeXMLNode(xe *xml.Encoder, n *Node) error {
	attrs, text, hasText, err := xmlAttrsAndText(n)
	if err != nil {
		return err
	}
	for _, a := range n.Attributes {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}

	start := xml.StartElement{Name: xml.Name{Local: n.Key}, Attr: attrs}
	if err := xe.EncodeToken(start); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrEncodingError, err)
	}

	if hasText {
		if err := xe.EncodeToken(xml.CharData([]byte(text))); err != nil {
			return fmt.Errorf("%w: %s", errs.ErrEncodingError, err)
		}
	}

	for _, c := range n.Children {
		if err := encodeXMLNode(xe, c); err != nil {
			return err
		}
	}

	return xe.EncodeToken(xml.EndElement{Name: start.Name})
}

// xmlAttrsAndText derives the reserved __type/__count/__size attributes
// and the element's text content from a node's Value, per spec §4.7's
// canonical emission forms.
func xmlAttrsAndText(n *Node) ([]xml.Attr, string, bool, error) {
	if n.Value == nil {
		return nil, "", false, nil
	}

	switch n.Value.Tag {
	case format.TagString:
		return []xml.Attr{{Name: xml.Name{Local: attrType}, Value: "str"}}, n.Value.Text, true, nil

	case format.TagBinary:
		attrs := []xml.Attr{
			{Name: xml.Name{Local: attrType}, Value: "bin"},
			{Name: xml.Name{Local: attrSize}, Value: strconv.Itoa(len(n.Value.Raw))},
		}
		return attrs, EncodeHex(n.Value.Raw), true, nil

	default:
		spec, err := format.ByID(n.Value.Tag)
		if err != nil {
			return nil, "", false, err
		}

		attrs := []xml.Attr{{Name: xml.Name{Local: attrType}, Value: spec.Name}}
		if n.Value.IsArray {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: attrCount}, Value: strconv.Itoa(n.Value.Len())})
		}

		parts := make([]string, 0, n.Value.Len())
		for _, e := range n.Value.Elems {
			s, err := DecodeElement(spec, e)
			if err != nil {
				return nil, "", false, err
			}
			parts = append(parts, s)
		}

		return attrs, strings.Join(parts, " "), true, nil
	}
}

// parseFrame tracks one open element's reserved-attribute state while
// DecodeText walks the token stream, playing the role a stack of
// NodeCollections would, but built incrementally against encoding/xml
// events instead of against a staged tree.
type parseFrame struct {
	node     *Node
	typeName string
	hasType  bool
	count    int
	hasCount bool
	size     int
	hasSize  bool
}

// DecodeText parses text XML into a Node tree, resolving each element's
// __type/__count/__size attributes against format.TypeRegistry and
// parsing its character content accordingly (spec §4.7).
func DecodeText(raw []byte) (*Node, format.Encoding, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, ok := encodingByXMLCharset(charset)
		if !ok {
			return nil, fmt.Errorf("%w: unknown XML charset %q", errs.ErrEncodingError, charset)
		}
		codec, err := enc.Codec()
		if err != nil {
			return nil, err
		}
		return transform.NewReader(input, codec.NewDecoder()), nil
	}

	var root *Node
	var stack []*parseFrame
	declEncoding := format.EncodingUTF8

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", errs.ErrStringParse, err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target != "xml" {
				continue
			}
			if charset, ok := procInstEncoding(t.Inst); ok {
				enc, ok := encodingByXMLCharset(charset)
				if !ok {
					return nil, 0, fmt.Errorf("%w: unknown XML charset %q", errs.ErrEncodingError, charset)
				}
				declEncoding = enc
			}

		case xml.StartElement:
			frame, err := newParseFrame(t)
			if err != nil {
				return nil, 0, err
			}

			if len(stack) > 0 {
				stack[len(stack)-1].node.AddChild(frame.node)
			} else {
				root = frame.node
			}
			stack = append(stack, frame)

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}

			frame := stack[len(stack)-1]
			v, err := buildValueFromText(frame, text)
			if err != nil {
				return nil, 0, err
			}
			frame.node.Value = &v

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, 0, fmt.Errorf("%w: unmatched end tag %q", errs.ErrInvalidState, t.Name.Local)
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if frame.node.Value == nil && frame.hasType {
				switch frame.typeName {
				case "str":
					v := NewText(format.TagString, "")
					frame.node.Value = &v
				case "bin":
					v := NewBinary(nil)
					frame.node.Value = &v
				default:
					return nil, 0, fmt.Errorf("%w: element %q declares __type=%q but has no text content", errs.ErrTypeMismatch, frame.node.Key, frame.typeName)
				}
			}
		}
	}

	if len(stack) != 0 {
		return nil, 0, fmt.Errorf("%w: unclosed element %q", errs.ErrInvalidState, stack[len(stack)-1].node.Key)
	}
	if root == nil {
		return nil, 0, fmt.Errorf("%w: empty document", errs.ErrInvalidState)
	}

	return root, declEncoding, nil
}

// procInstEncodingRe extracts the encoding pseudo-attribute's value out of
// an <?xml ...?> ProcInst's raw Inst bytes, which encoding/xml hands back
// unparsed (xml.ProcInst carries no structured attributes).
var procInstEncodingRe = regexp.MustCompile(`(?i)\bencoding\s*=\s*"([^"]*)"`)

func procInstEncoding(inst []byte) (string, bool) {
	m := procInstEncodingRe.FindSubmatch(inst)
	if m == nil {
		return "", false
	}

	return string(m[1]), true
}

func newParseFrame(start xml.StartElement) (*parseFrame, error) {
	n := New(start.Name.Local)
	frame := &parseFrame{node: n}

	for _, a := range start.Attr {
		switch a.Name.Local {
		case attrType:
			frame.typeName = a.Value
			frame.hasType = true
		case attrCount:
			c, err := strconv.Atoi(a.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: __count %q: %s", errs.ErrStringParse, a.Value, err)
			}
			frame.count = c
			frame.hasCount = true
		case attrSize:
			s, err := strconv.Atoi(a.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: __size %q: %s", errs.ErrStringParse, a.Value, err)
			}
			frame.size = s
			frame.hasSize = true
		default:
			n.SetAttribute(a.Name.Local, a.Value)
		}
	}

	return frame, nil
}

// buildValueFromText resolves frame's pending __type/__count/__size
// state against text, producing the Value the node actually carries.
func buildValueFromText(frame *parseFrame, text string) (Value, error) {
	if !frame.hasType {
		// No __type: an element that receives a Text event before its End
		// is upgraded from a container to str (spec §4.7).
		return NewText(format.TagString, text), nil
	}

	switch frame.typeName {
	case "str":
		return NewText(format.TagString, text), nil

	case "bin":
		raw, err := DecodeHex(text)
		if err != nil {
			return Value{}, err
		}
		if frame.hasSize && len(raw) != frame.size {
			return Value{}, fmt.Errorf("%w: bin __size=%d, decoded %d byte(s)", errs.ErrSizeMismatch, frame.size, len(raw))
		}
		return NewBinary(raw), nil

	default:
		spec, err := format.ByName(frame.typeName)
		if err != nil {
			return Value{}, err
		}

		if frame.hasCount {
			elems, err := splitArrayElements(spec, text)
			if err != nil {
				return Value{}, err
			}
			if len(elems) != frame.count {
				return Value{}, fmt.Errorf("%w: __count=%d, parsed %d element(s)", errs.ErrSizeMismatch, frame.count, len(elems))
			}
			return NewArray(spec, elems)
		}

		elem, err := EncodeElement(spec, text)
		if err != nil {
			return Value{}, err
		}
		return NewScalar(spec, elem)
	}
}

// splitArrayElements groups text's whitespace-separated fields into
// spec.Count-sized chunks (one chunk per array element, spec §4.7's
// "fixed-vector items space-separated in groups of count"), an ip4
// chunk being a single dotted-quad token rather than spec.Count fields.
func splitArrayElements(spec format.TypeSpec, text string) ([][]byte, error) {
	fields := strings.Fields(text)

	tokensPerElem := spec.Count
	if spec.Family == "ip4" {
		tokensPerElem = 1
	}

	if tokensPerElem == 0 || len(fields)%tokensPerElem != 0 {
		return nil, fmt.Errorf("%w: %s array text has %d field(s), not a multiple of %d", errs.ErrSizeMismatch, spec.Name, len(fields), tokensPerElem)
	}

	n := len(fields) / tokensPerElem
	elems := make([][]byte, n)
	for i := 0; i < n; i++ {
		chunk := strings.Join(fields[i*tokensPerElem:(i+1)*tokensPerElem], " ")
		elem, err := EncodeElement(spec, chunk)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}

	return elems, nil
}

// xmlCharsetName and encodingByXMLCharset translate between kbin's
// header Encoding and the charset names an XML prolog declares.
func xmlCharsetName(enc format.Encoding) string {
	switch enc {
	case format.EncodingShiftJIS:
		return "Shift_JIS"
	case format.EncodingASCII:
		return "us-ascii"
	case format.EncodingISO8859_1:
		return "ISO-8859-1"
	case format.EncodingEUCJP:
		return "EUC-JP"
	default:
		return "UTF-8"
	}
}

func encodingByXMLCharset(charset string) (format.Encoding, bool) {
	switch strings.ToLower(charset) {
	case "shift_jis", "shift-jis", "sjis":
		return format.EncodingShiftJIS, true
	case "us-ascii", "ascii":
		return format.EncodingASCII, true
	case "iso-8859-1", "latin1":
		return format.EncodingISO8859_1, true
	case "euc-jp":
		return format.EncodingEUCJP, true
	case "utf-8", "utf8", "":
		return format.EncodingUTF8, true
	default:
		return 0, false
	}
}
