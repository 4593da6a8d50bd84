package huffman

import (
	"errors"
	"fmt"
	"io"
)

// Format selects how the tree is laid out in front of the packed bits.
type Format int

const (
	// FormatTagged prefixes every node with a tag byte, so a leaf symbol
	// can take any of the 256 byte values.
	FormatTagged Format = iota
	// FormatLegacy writes one symbol byte per node in pre-order and marks
	// absent children with NullMarker. Leaves equal to NullMarker cannot be
	// represented.
	FormatLegacy
)

const (
	tagLeaf     = 'L'
	tagInternal = 'I'
	tagEmpty    = 'E'

	NullMarker = '#'
)

func (f Format) String() string {
	switch f {
	case FormatTagged:
		return "tagged"
	case FormatLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// SerializeTree writes the tree in pre-order using the given format.
func SerializeTree(w io.ByteWriter, tree *Tree, f Format) error {
	switch f {
	case FormatTagged:
		return serializeTagged(w, tree)
	case FormatLegacy:
		return serializeLegacy(w, tree)
	}
	return ErrUnknownFormat
}

// DeserializeTree rebuilds a tree written by SerializeTree with the same
// format.
func DeserializeTree(r io.ByteReader, f Format) (*Tree, error) {
	switch f {
	case FormatTagged:
		return deserializeTagged(r)
	case FormatLegacy:
		return deserializeLegacy(r)
	}
	return nil, ErrUnknownFormat
}

func serializeTagged(w io.ByteWriter, tree *Tree) error {
	if tree.Empty() {
		return w.WriteByte(tagEmpty)
	}
	var err error
	tree.walk(func(i int32, _ Code) {
		if err != nil {
			return
		}
		if !tree.IsLeaf(i) {
			err = w.WriteByte(tagInternal)
			return
		}
		if err = w.WriteByte(tagLeaf); err == nil {
			err = w.WriteByte(tree.Symbol(i))
		}
	})
	return err
}

func serializeLegacy(w io.ByteWriter, tree *Tree) error {
	for i := range tree.nodes {
		if tree.IsLeaf(int32(i)) && tree.nodes[i].symbol == NullMarker {
			return ErrMarkerCollision
		}
	}
	stack := []int32{tree.root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i == noNode {
			if err := w.WriteByte(NullMarker); err != nil {
				return err
			}
			continue
		}
		// internal nodes carry symbol 0, which the reader ignores
		if err := w.WriteByte(tree.nodes[i].symbol); err != nil {
			return err
		}
		stack = append(stack, tree.nodes[i].right, tree.nodes[i].left)
	}
	return nil
}

// pending is an internal node still waiting for some of its children.
type pending struct {
	node   int32
	filled int
}

func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, ErrTruncated
	}
	return b, err
}

func deserializeTagged(r io.ByteReader) (*Tree, error) {
	tree := newTree(maxNodes)
	readNode := func() (node int32, internal bool, err error) {
		if len(tree.nodes) == maxNodes {
			return noNode, false, fmt.Errorf("%w: more than %d nodes", ErrMalformedTree, maxNodes)
		}
		tag, err := readByte(r)
		if err != nil {
			return noNode, false, err
		}
		switch tag {
		case tagLeaf:
			symbol, err := readByte(r)
			if err != nil {
				return noNode, false, err
			}
			return tree.addLeaf(symbol), false, nil
		case tagInternal:
			// children are patched in once they have been read
			return tree.addInternal(noNode, noNode), true, nil
		case tagEmpty:
			if len(tree.nodes) == 0 {
				return noNode, false, nil
			}
		}
		return noNode, false, fmt.Errorf("%w: %#x", ErrBadTag, tag)
	}

	root, internal, err := readNode()
	if err != nil {
		return nil, err
	}
	tree.root = root
	var stack []pending
	if internal {
		stack = append(stack, pending{node: root})
	}
	for len(stack) > 0 {
		child, internal, err := readNode()
		if err != nil {
			return nil, err
		}
		top := len(stack) - 1
		parent := stack[top].node
		if stack[top].filled == 0 {
			tree.nodes[parent].left = child
		} else {
			tree.nodes[parent].right = child
		}
		stack[top].filled++
		if stack[top].filled == 2 {
			stack = stack[:top]
		}
		if internal {
			stack = append(stack, pending{node: child})
		}
	}
	return tree, nil
}

func deserializeLegacy(r io.ByteReader) (*Tree, error) {
	tree := newTree(maxNodes)
	first, err := readByte(r)
	if err != nil {
		return nil, err
	}
	if first == NullMarker {
		return tree, nil
	}
	tree.root = tree.addLeaf(first)
	stack := []pending{{node: tree.root}}
	for len(stack) > 0 {
		b, err := readByte(r)
		if err != nil {
			return nil, err
		}
		child := noNode
		if b != NullMarker {
			if len(tree.nodes) == maxNodes {
				return nil, fmt.Errorf("%w: more than %d nodes", ErrMalformedTree, maxNodes)
			}
			child = tree.addLeaf(b)
		}
		top := len(stack) - 1
		parent := stack[top].node
		if stack[top].filled == 0 {
			tree.nodes[parent].left = child
		} else {
			tree.nodes[parent].right = child
		}
		stack[top].filled++
		if stack[top].filled == 2 {
			stack = stack[:top]
			if (tree.nodes[parent].left == noNode) != (tree.nodes[parent].right == noNode) {
				return nil, fmt.Errorf("%w: node with a single child", ErrMalformedTree)
			}
		}
		if child != noNode {
			stack = append(stack, pending{node: child})
		}
	}
	return tree, nil
}
