package huffman

import (
	"container/heap"
)

const noNode = int32(-1)

// maxNodes bounds a tree over a byte alphabet: 256 leaves and 255 internal nodes.
const maxNodes = 2*256 - 1

// Tree is a Huffman code tree stored as an arena. Nodes are addressed by
// index; a leaf has no children and an internal node always has two.
type Tree struct {
	nodes []treeNode
	root  int32
}

type treeNode struct {
	symbol      byte
	left, right int32
}

func newTree(capacity int) *Tree {
	return &Tree{
		nodes: make([]treeNode, 0, capacity),
		root:  noNode,
	}
}

func (t *Tree) addLeaf(symbol byte) int32 {
	t.nodes = append(t.nodes, treeNode{symbol: symbol, left: noNode, right: noNode})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) addInternal(left, right int32) int32 {
	t.nodes = append(t.nodes, treeNode{left: left, right: right})
	return int32(len(t.nodes) - 1)
}

// Empty reports whether the tree has no nodes, which is the tree of an
// empty input.
func (t *Tree) Empty() bool {
	return t.root == noNode
}

// Root returns the index of the root node, or -1 for an empty tree.
func (t *Tree) Root() int32 {
	return t.root
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) IsLeaf(i int32) bool {
	return t.nodes[i].left == noNode
}

func (t *Tree) Symbol(i int32) byte {
	return t.nodes[i].symbol
}

func (t *Tree) Left(i int32) int32 {
	return t.nodes[i].left
}

func (t *Tree) Right(i int32) int32 {
	return t.nodes[i].right
}

// Leaves returns the leaf symbols in pre-order. The codec never needs it;
// it is there for inspecting a built or decoded tree.
func (t *Tree) Leaves() []byte {
	var leaves []byte
	t.walk(func(i int32, _ Code) {
		if t.IsLeaf(i) {
			leaves = append(leaves, t.nodes[i].symbol)
		}
	})
	return leaves
}

// Equal reports whether both trees have the same shape and the same leaf
// symbols at the same positions. Symbols held by internal nodes are ignored.
// It is used to check serialisation round trips.
func (t *Tree) Equal(other *Tree) bool {
	if t.Empty() || other.Empty() {
		return t.Empty() == other.Empty()
	}
	type pair struct{ a, b int32 }
	stack := []pair{{t.root, other.root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.IsLeaf(p.a) != other.IsLeaf(p.b) {
			return false
		}
		if t.IsLeaf(p.a) {
			if t.nodes[p.a].symbol != other.nodes[p.b].symbol {
				return false
			}
			continue
		}
		stack = append(stack,
			pair{t.nodes[p.a].right, other.nodes[p.b].right},
			pair{t.nodes[p.a].left, other.nodes[p.b].left},
		)
	}
	return true
}

// walk visits every node in pre-order together with the path leading to it.
func (t *Tree) walk(visit func(i int32, path Code)) {
	if t.Empty() {
		return
	}
	type frame struct {
		node int32
		path Code
	}
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(f.node, f.path)
		if t.IsLeaf(f.node) {
			continue
		}
		stack = append(stack,
			frame{t.nodes[f.node].right, f.path + "1"},
			frame{t.nodes[f.node].left, f.path + "0"},
		)
	}
}

type heapItem struct {
	freq uint64
	id   int
	node int32
}

type huffmanHeap []heapItem

func (hub *huffmanHeap) Push(item any) {
	*hub = append(*hub, item.(heapItem))
}

func (hub *huffmanHeap) Pop() any {
	popped := (*hub)[len(*hub)-1]
	(*hub) = (*hub)[:len(*hub)-1]
	return popped
}

func (hub huffmanHeap) Len() int {
	return len(hub)
}

func (hub huffmanHeap) Less(i, j int) bool {
	if hub[i].freq != hub[j].freq {
		return hub[i].freq < hub[j].freq
	}
	return hub[i].id < hub[j].id
}

func (hub huffmanHeap) Swap(i, j int) {
	hub[i], hub[j] = hub[j], hub[i]
}

var _ heap.Interface = (*huffmanHeap)(nil)

// BuildTree merges the two least frequent nodes until one remains. Leaves
// enter the queue in ascending symbol order and every node gets a monotonic
// id, so ties resolve the same way on every run. The first node popped
// becomes the left child.
func BuildTree(freq FrequencyTable) (*Tree, error) {
	symbols := freq.Symbols()
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}
	tree := newTree(2*len(symbols) - 1)
	treehub := make(huffmanHeap, 0, len(symbols))
	monoId := 0
	for _, symbol := range symbols {
		treehub = append(treehub, heapItem{
			freq: freq[symbol],
			id:   monoId,
			node: tree.addLeaf(symbol),
		})
		monoId++
	}
	heap.Init(&treehub)
	for treehub.Len() > 1 {
		x := heap.Pop(&treehub).(heapItem)
		y := heap.Pop(&treehub).(heapItem)
		heap.Push(&treehub, heapItem{
			freq: x.freq + y.freq,
			id:   monoId,
			node: tree.addInternal(x.node, y.node),
		})
		monoId++
	}
	tree.root = heap.Pop(&treehub).(heapItem).node
	return tree, nil
}
