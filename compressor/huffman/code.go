package huffman

import (
	"strings"
)

// Code is a sequence of bits written as '0' and '1' characters, first bit
// first.
type Code string

// CodeTable maps each byte value to its code. Symbols absent from the tree
// have an empty code.
type CodeTable [256]Code

// NewCodeTable walks the tree root to leaves, appending '0' for every left
// edge and '1' for every right edge. A tree made of a single leaf has no
// edges; its only symbol is given the code "0".
func NewCodeTable(tree *Tree) CodeTable {
	var table CodeTable
	tree.walk(func(i int32, path Code) {
		if !tree.IsLeaf(i) {
			return
		}
		if path == "" {
			path = "0"
		}
		table[tree.Symbol(i)] = path
	})
	return table
}

// Has reports whether symbol was assigned a code. The encoder indexes the
// table directly; Has is for callers inspecting a table.
func (table *CodeTable) Has(symbol byte) bool {
	return table[symbol] != ""
}

func (table *CodeTable) Lookup(symbol byte) Code {
	return table[symbol]
}

// Len returns the number of symbols with a code.
func (table *CodeTable) Len() int {
	n := 0
	for _, code := range table {
		if code != "" {
			n++
		}
	}
	return n
}

// EncodedBits returns the length in bits of an input with the given
// frequencies once encoded with this table.
func (table *CodeTable) EncodedBits(freq FrequencyTable) uint64 {
	var bits uint64
	for symbol, count := range freq {
		bits += count * uint64(len(table[symbol]))
	}
	return bits
}

// IsPrefixFree reports whether no code is a prefix of another. It is a
// quadratic check meant for tests and debugging, not for the codec path.
func (table *CodeTable) IsPrefixFree() bool {
	for a, codeA := range table {
		if codeA == "" {
			continue
		}
		for b, codeB := range table {
			if a == b || codeB == "" {
				continue
			}
			if strings.HasPrefix(string(codeB), string(codeA)) {
				return false
			}
		}
	}
	return true
}
