package node

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
)

// EncodeElement parses the text form of one repetition unit of spec
// (a scalar, or a fixed/wide vector's Count lanes space-separated, or an
// ip4 dot-quad) into its on-wire big-endian bytes (spec §4.7).
func EncodeElement(spec format.TypeSpec, text string) ([]byte, error) {
	if spec.Family == "ip4" {
		ip := net.ParseIP(strings.TrimSpace(text)).To4()
		if ip == nil {
			return nil, fmt.Errorf("%w: %s: %q is not a dotted-quad IPv4 address", errs.ErrStringParse, spec.Name, text)
		}

		return []byte(ip), nil
	}

	fields := strings.Fields(text)
	if len(fields) != spec.Count {
		return nil, fmt.Errorf("%w: %s expects %d value(s), got %d", errs.ErrSizeMismatch, spec.Name, spec.Count, len(fields))
	}

	out := make([]byte, 0, spec.Bytes())
	for _, f := range fields {
		lane, err := encodeLane(spec, f)
		if err != nil {
			return nil, err
		}
		out = append(out, lane...)
	}

	return out, nil
}

func encodeLane(spec format.TypeSpec, field string) ([]byte, error) {
	lane := make([]byte, spec.Size)

	switch spec.Family {
	case "bool":
		switch field {
		case "0":
			lane[0] = 0
		case "1":
			lane[0] = 1
		default:
			return nil, fmt.Errorf("%w: boolean text must be \"0\" or \"1\", got %q", errs.ErrStringParse, field)
		}
	case "time":
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", errs.ErrStringParse, spec.Name, err)
		}
		binary.BigEndian.PutUint32(lane, uint32(v))
	case "float":
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", errs.ErrStringParse, spec.Name, err)
		}
		binary.BigEndian.PutUint32(lane, math.Float32bits(float32(v)))
	case "double":
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", errs.ErrStringParse, spec.Name, err)
		}
		binary.BigEndian.PutUint64(lane, math.Float64bits(v))
	case "s8", "s16", "s32", "s64":
		v, err := strconv.ParseInt(field, 10, spec.Size*8)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", errs.ErrStringParse, spec.Name, err)
		}
		putSignedBE(lane, v)
	case "u8", "u16", "u32", "u64":
		v, err := strconv.ParseUint(field, 10, spec.Size*8)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", errs.ErrStringParse, spec.Name, err)
		}
		putUnsignedBE(lane, v)
	default:
		return nil, fmt.Errorf("%w: unhandled family %q for type %s", errs.ErrUnknownType, spec.Family, spec.Name)
	}

	return lane, nil
}

// DecodeElement renders one repetition unit of spec's raw bytes back to
// text, using the canonical emission forms from spec §4.7: floats to six
// decimal places, booleans as "0"/"1", ip4 as a dotted quad.
func DecodeElement(spec format.TypeSpec, raw []byte) (string, error) {
	if len(raw) != spec.Bytes() {
		return "", fmt.Errorf("%w: %s expects %d bytes, got %d", errs.ErrSizeMismatch, spec.Name, spec.Bytes(), len(raw))
	}

	if spec.Family == "ip4" {
		return net.IP(raw).String(), nil
	}

	fields := make([]string, spec.Count)
	for i := 0; i < spec.Count; i++ {
		lane := raw[i*spec.Size : (i+1)*spec.Size]
		f, err := decodeLane(spec, lane)
		if err != nil {
			return "", err
		}
		fields[i] = f
	}

	return strings.Join(fields, " "), nil
}

func decodeLane(spec format.TypeSpec, lane []byte) (string, error) {
	switch spec.Family {
	case "bool":
		switch lane[0] {
		case 0:
			return "0", nil
		case 1:
			return "1", nil
		default:
			return "", fmt.Errorf("%w: byte 0x%02x", errs.ErrInvalidBoolean, lane[0])
		}
	case "time":
		return strconv.FormatUint(uint64(binary.BigEndian.Uint32(lane)), 10), nil
	case "float":
		v := math.Float32frombits(binary.BigEndian.Uint32(lane))
		return strconv.FormatFloat(float64(v), 'f', 6, 32), nil
	case "double":
		v := math.Float64frombits(binary.BigEndian.Uint64(lane))
		return strconv.FormatFloat(v, 'f', 6, 64), nil
	case "s8", "s16", "s32", "s64":
		return strconv.FormatInt(getSignedBE(lane), 10), nil
	case "u8", "u16", "u32", "u64":
		return strconv.FormatUint(getUnsignedBE(lane), 10), nil
	default:
		return "", fmt.Errorf("%w: unhandled family %q for type %s", errs.ErrUnknownType, spec.Family, spec.Name)
	}
}

func putSignedBE(lane []byte, v int64) {
	putUnsignedBE(lane, uint64(v))
}

func putUnsignedBE(lane []byte, v uint64) {
	switch len(lane) {
	case 1:
		lane[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(lane, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(lane, uint32(v))
	case 8:
		binary.BigEndian.PutUint64(lane, v)
	}
}

func getSignedBE(lane []byte) int64 {
	switch len(lane) {
	case 1:
		return int64(int8(lane[0]))
	case 2:
		return int64(int16(binary.BigEndian.Uint16(lane)))
	case 4:
		return int64(int32(binary.BigEndian.Uint32(lane)))
	case 8:
		return int64(binary.BigEndian.Uint64(lane))
	}
	return 0
}

func getUnsignedBE(lane []byte) uint64 {
	switch len(lane) {
	case 1:
		return uint64(lane[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(lane))
	case 4:
		return uint64(binary.BigEndian.Uint32(lane))
	case 8:
		return binary.BigEndian.Uint64(lane)
	}
	return 0
}

// EncodeHex and DecodeHex implement bin's text form: lowercase hex, no
// separators (spec §4.7).
func EncodeHex(raw []byte) string {
	return hex.EncodeToString(raw)
}

func DecodeHex(text string) ([]byte, error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrHexError, err)
	}

	return raw, nil
}
