package huffman

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitWriter(t *testing.T) {
	for _, tt := range []struct {
		codes   []Code
		packed  []byte
		padding int
	}{
		{nil, []byte{}, 0},
		{[]Code{"1"}, []byte{0x80}, 7},
		{[]Code{"1", "1", "1", "0"}, []byte{0xe0}, 4},
		{[]Code{"1111", "0000"}, []byte{0xf0}, 0},
		{[]Code{"10101010", "1"}, []byte{0xaa, 0x80}, 7},
		{[]Code{"0000000", "11"}, []byte{0x01, 0x80}, 7},
	} {
		bw := NewBitWriter(0)
		var bits int
		for _, code := range tt.codes {
			bw.WriteCode(code)
			bits += len(code)
		}
		require.Equal(t, uint64(bits), bw.Len())
		packed, padding := bw.Finish()
		require.Equal(t, tt.packed, packed, "codes %v", tt.codes)
		require.Equal(t, tt.padding, padding)
		require.Zero(t, (bits+padding)%8)
	}
}

func TestBitReader(t *testing.T) {
	br, err := NewBitReader([]byte{0xaa, 0x80}, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(9), br.Len())
	var got []byte
	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, bit)
	}
	require.Equal(t, []byte{1, 0, 1, 0, 1, 0, 1, 0, 1}, got)
	require.Zero(t, br.Remaining())
}

func TestBitReaderPadding(t *testing.T) {
	_, err := NewBitReader([]byte{0}, 8)
	require.ErrorIs(t, err, ErrBadPadding)
	_, err = NewBitReader([]byte{0}, -1)
	require.ErrorIs(t, err, ErrBadPadding)
	_, err = NewBitReader(nil, 3)
	require.ErrorIs(t, err, ErrBadPadding)

	br, err := NewBitReader(nil, 0)
	require.NoError(t, err)
	_, err = br.ReadBit()
	require.Equal(t, io.EOF, err)
}

func TestBitWriterReaderAgree(t *testing.T) {
	codes := []Code{"0", "110", "10", "1110", "1111", "0", "0"}
	bw := NewBitWriter(4)
	for _, code := range codes {
		bw.WriteCode(code)
	}
	packed, padding := bw.Finish()
	br, err := NewBitReader(packed, padding)
	require.NoError(t, err)

	var read []byte
	for bit, err := br.ReadBit(); err == nil; bit, err = br.ReadBit() {
		read = append(read, '0'+bit)
	}
	var expect string
	for _, code := range codes {
		expect += string(code)
	}
	require.Equal(t, expect, string(read))
}

func TestBitReaderStopsBeforePadding(t *testing.T) {
	// the padding bits are set, so reading them would show up as ones
	br, err := NewBitReader([]byte{0x0f, 0xff}, 3)
	require.NoError(t, err)
	require.Equal(t, 2, br.Size())
	require.Equal(t, uint64(13), br.Remaining())

	var ones int
	for i := 0; i < 13; i++ {
		bit, err := br.ReadBit()
		require.NoError(t, err)
		ones += int(bit)
		require.Equal(t, uint64(12-i), br.Remaining())
	}
	require.Equal(t, 9, ones)
	_, err = br.ReadBit()
	require.Equal(t, io.EOF, err)
	_, err = br.ReadBit()
	require.Equal(t, io.EOF, err)
}
