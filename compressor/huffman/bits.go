package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/32bitkid/bitreader"
)

// BitWriter packs bits MSB-first into bytes.
type BitWriter struct {
	buf   []byte
	cur   byte
	width uint8
	bits  uint64
}

func NewBitWriter(sizeHint int) *BitWriter {
	return &BitWriter{buf: make([]byte, 0, sizeHint)}
}

func (bw *BitWriter) WriteBit(bit byte) {
	bw.cur = bw.cur<<1 | bit&1
	bw.width++
	bw.bits++
	if bw.width == 8 {
		bw.buf = append(bw.buf, bw.cur)
		bw.cur, bw.width = 0, 0
	}
}

func (bw *BitWriter) WriteCode(code Code) {
	for i := 0; i < len(code); i++ {
		bw.WriteBit(code[i] - '0')
	}
}

// Len returns the number of bits written so far.
func (bw *BitWriter) Len() uint64 {
	return bw.bits
}

// Finish zero-pads the last partial byte and returns the packed bytes along
// with the number of padding bits, which is always in [0,7].
func (bw *BitWriter) Finish() (packed []byte, padding int) {
	if bw.width > 0 {
		padding = int(8 - bw.width)
		bw.buf = append(bw.buf, bw.cur<<padding)
		bw.cur, bw.width = 0, 0
	}
	return bw.buf, padding
}

// BitReader yields the bits of a packed buffer MSB-first, leaving out the
// trailing padding.
type BitReader struct {
	src  bitreader.BitReader8
	size int
	pos  uint64
	bits uint64
}

func NewBitReader(data []byte, padding int) (*BitReader, error) {
	if padding < 0 || padding > 7 {
		return nil, fmt.Errorf("%w: %d", ErrBadPadding, padding)
	}
	if padding > 0 && len(data) == 0 {
		return nil, fmt.Errorf("%w: %d padding bits without data", ErrBadPadding, padding)
	}
	return &BitReader{
		src:  bitreader.NewReader(bytes.NewReader(data)),
		size: len(data),
		bits: uint64(len(data))*8 - uint64(padding),
	}, nil
}

// ReadBit returns the next bit, or io.EOF once every bit has been read.
func (br *BitReader) ReadBit() (byte, error) {
	if br.pos >= br.bits {
		return 0, io.EOF
	}
	set, err := br.src.Read1()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	br.pos++
	if set {
		return 1, nil
	}
	return 0, nil
}

// Len returns the number of meaningful bits.
func (br *BitReader) Len() uint64 {
	return br.bits
}

// Remaining returns the number of bits left before the padding.
func (br *BitReader) Remaining() uint64 {
	return br.bits - br.pos
}

// Size returns the number of packed bytes, padding included.
func (br *BitReader) Size() int {
	return br.size
}
