package huffman

import "errors"

var (
	ErrEmptyInput       = errors.New("huffman: no symbols to build a tree from")
	ErrMarkerCollision  = errors.New("huffman: symbol collides with the legacy null marker")
	ErrTruncated        = errors.New("huffman: compressed data is truncated")
	ErrBadTag           = errors.New("huffman: unknown tree node tag")
	ErrMalformedTree    = errors.New("huffman: malformed tree")
	ErrMissingSeparator = errors.New("huffman: missing separator after tree")
	ErrBadPadding       = errors.New("huffman: invalid padding count")
	ErrInvalidCode      = errors.New("huffman: bit sequence does not match any code")
	ErrInputNotClosed   = errors.New("huffman: input has not been closed yet")
	ErrUnknownFormat    = errors.New("huffman: unknown tree format")
)
