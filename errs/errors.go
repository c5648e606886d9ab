// Package errs defines the closed error taxonomy shared by every kbinxml
// package. Every parse or encode failure is fatal to the current
// document: callers propagate these sentinel errors, wrapped with
// fmt.Errorf("%w: ...", errs.ErrX, ...) for context, all the way up to
// the top-level Encode*/Decode* boundary. There is no partial-result
// mode and no retry.
package errs

import "errors"

var (
	// ErrInvalidHeader means the 8-byte document header failed its magic,
	// compression-flag, or encoding-byte/complement check.
	ErrInvalidHeader = errors.New("kbinxml: invalid header")

	// ErrUnknownType means a tag id or type name is not in the TypeRegistry.
	ErrUnknownType = errors.New("kbinxml: unknown type")

	// ErrTypeMismatch means the node stream violated its expected shape,
	// e.g. a missing NodeEnd, or a __type attribute contradicted by the
	// element's actual content.
	ErrTypeMismatch = errors.New("kbinxml: type mismatch")

	// ErrSizeMismatch means a fixed-vector parse, a __size attribute, or
	// an array byte-length disagreed with the expected element size.
	ErrSizeMismatch = errors.New("kbinxml: size mismatch")

	// ErrInvalidBoolean means a boolean payload byte was not 0 or 1.
	ErrInvalidBoolean = errors.New("kbinxml: invalid boolean")

	// ErrInvalidIdentifier means a sixbit encode saw a disallowed
	// character, or an identifier exceeded its length limit (255 for
	// sixbit, 64 for raw).
	ErrInvalidIdentifier = errors.New("kbinxml: invalid identifier")

	// ErrInvalidSixbit means a sixbit decode produced a value >= 64: wire
	// corruption, since a well-formed encoder can never emit this.
	ErrInvalidSixbit = errors.New("kbinxml: invalid sixbit value")

	// ErrInvalidState means the parse protocol was violated: popping an
	// empty node stack, text content before a NodeStart, FileEnd with an
	// open node, and similar sequencing errors.
	ErrInvalidState = errors.New("kbinxml: invalid state")

	// ErrEndOfStream means a read ran past the end of the input.
	ErrEndOfStream = errors.New("kbinxml: end of stream")

	// ErrStringParse means a text value failed to parse into its __type.
	ErrStringParse = errors.New("kbinxml: string parse failed")

	// ErrHexError means a binary value's hex text failed to decode.
	ErrHexError = errors.New("kbinxml: invalid hex")

	// ErrEncodingError means a text payload failed to decode/encode under
	// the document's declared character encoding.
	ErrEncodingError = errors.New("kbinxml: encoding error")
)
