// Package huffman implements a static Huffman codec for byte streams.
//
// A compressed stream is laid out as
//
//	[serialized tree][separator '|'][padding '0'..'7'][packed code bits]
//
// where the packed bits are MSB-first and the last byte is zero-padded.
package huffman

import (
	"bytes"
	"fmt"
)

const Separator = '|'

// progressStep is how many input bytes are processed between progress
// callbacks.
const progressStep = 64 * 1024

// Stage is a step of the compress or decompress pipeline.
type Stage int

const (
	StageIdle Stage = iota
	StageBuildingTree
	StageEncoding
	StageReadingTree
	StageUnpacking
	StageDecoding
	StageWriting
)

var stageNames = [...]string{
	StageIdle:         "idle",
	StageBuildingTree: "building tree",
	StageEncoding:     "encoding",
	StageReadingTree:  "reading tree",
	StageUnpacking:    "unpacking",
	StageDecoding:     "decoding",
	StageWriting:      "writing",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

type options struct {
	format       Format
	dropNewlines bool
	progress     func(n int)
	stage        func(Stage)
}

type Option func(*options)

// WithFormat selects the tree layout. The default is FormatTagged.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithDropNewlines makes Decompress leave out every decoded '\n'. This
// reproduces the output of the original tool and breaks round trips of
// inputs containing newlines.
func WithDropNewlines(drop bool) Option {
	return func(o *options) { o.dropNewlines = drop }
}

// WithProgress registers a callback receiving the number of input bytes
// processed since the previous call. Over a whole operation the values add
// up to the length of the input.
func WithProgress(fn func(n int)) Option {
	return func(o *options) { o.progress = fn }
}

// WithStageHook registers a callback invoked on every pipeline transition.
func WithStageHook(fn func(Stage)) Option {
	return func(o *options) { o.stage = fn }
}

func newOptions(opts []Option) *options {
	o := &options{
		format:   FormatTagged,
		progress: func(int) {},
		stage:    func(Stage) {},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Compress encodes content and returns the complete compressed stream.
func Compress(content []byte, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	o.stage(StageBuildingTree)
	freq := CountFrequencies(content)
	tree := newTree(0)
	if freq.Total() > 0 {
		var err error
		if tree, err = BuildTree(freq); err != nil {
			return nil, err
		}
	}
	symbolEnc := NewCodeTable(tree)

	o.stage(StageEncoding)
	bw := NewBitWriter(int(symbolEnc.EncodedBits(freq)/8) + 1)
	reported := 0
	for i, symbol := range content {
		bw.WriteCode(symbolEnc[symbol])
		if i+1-reported == progressStep {
			o.progress(progressStep)
			reported = i + 1
		}
	}
	if reported < len(content) {
		o.progress(len(content) - reported)
	}
	packed, padding := bw.Finish()

	o.stage(StageWriting)
	var out bytes.Buffer
	out.Grow(2*tree.Len() + 2 + len(packed))
	if err := SerializeTree(&out, tree, o.format); err != nil {
		return nil, err
	}
	out.WriteByte(Separator)
	out.WriteByte(byte('0' + padding))
	out.Write(packed)
	o.stage(StageIdle)
	return out.Bytes(), nil
}

// Decompress reverses Compress. The same format must be selected.
func Decompress(content []byte, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	o.stage(StageReadingTree)
	r := bytes.NewReader(content)
	tree, err := DeserializeTree(r, o.format)
	if err != nil {
		return nil, err
	}
	sep, err := r.ReadByte()
	if err != nil {
		return nil, ErrMissingSeparator
	}
	if sep != Separator {
		return nil, fmt.Errorf("%w: found %#x", ErrMissingSeparator, sep)
	}
	digit, err := readByte(r)
	if err != nil {
		return nil, err
	}
	if digit < '0' || digit > '7' {
		return nil, fmt.Errorf("%w: %q", ErrBadPadding, digit)
	}

	o.stage(StageUnpacking)
	headerLen := len(content) - r.Len()
	br, err := NewBitReader(content[headerLen:], int(digit-'0'))
	if err != nil {
		return nil, err
	}
	o.progress(headerLen)

	o.stage(StageDecoding)
	output, err := decode(tree, br, o)
	if err != nil {
		return nil, err
	}
	o.stage(StageWriting)
	if o.dropNewlines {
		output = bytes.ReplaceAll(output, []byte{'\n'}, nil)
	}
	o.stage(StageIdle)
	return output, nil
}

// decode walks the tree from the root, one bit per edge, emitting a symbol
// and restarting at the root whenever a leaf is reached.
func decode(tree *Tree, br *BitReader, o *options) ([]byte, error) {
	if tree.Empty() {
		if br.Len() != 0 {
			return nil, fmt.Errorf("%w: %d data bits with an empty tree", ErrMalformedTree, br.Len())
		}
		return []byte{}, nil
	}
	output := make([]byte, 0, br.Remaining()/2)
	root := tree.Root()
	singleLeaf := tree.IsLeaf(root)
	current := root
	var consumed uint64
	for br.Remaining() > 0 {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, err
		}
		consumed++
		if consumed%(8*progressStep) == 0 {
			o.progress(progressStep)
		}
		if singleLeaf {
			if bit != 0 {
				return nil, ErrInvalidCode
			}
			output = append(output, tree.Symbol(root))
			continue
		}
		if bit == 0 {
			current = tree.Left(current)
		} else {
			current = tree.Right(current)
		}
		if tree.IsLeaf(current) {
			output = append(output, tree.Symbol(current))
			current = root
		}
	}
	if current != root {
		return nil, fmt.Errorf("%w: stream ends inside a code", ErrTruncated)
	}
	if rest := br.Size() - int(consumed/(8*progressStep))*progressStep; rest > 0 {
		o.progress(rest)
	}
	return output, nil
}
