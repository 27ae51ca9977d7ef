package huffpack

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeID identifies a node within a Tree.
type NodeID int32

// InvalidNode is returned by some functions to clearly indicate that no node
// is being returned, e.g. the children of a leaf.
const InvalidNode = NodeID(-1)

type treeNode struct {
	symbol Symbol
	freq   uint64
	left   NodeID
	right  NodeID
}

// Tree is a Huffman code tree stored as an arena of nodes.
//
// Leaves occupy NodeIDs 0 .. NumLeaves()-1 in the insertion order of the
// FrequencyTable that built them.  Internal nodes follow in the order they
// were created, so the root is always the last node.  A Tree is never
// modified after Init returns.
type Tree struct {
	nodes     []treeNode
	numLeaves int
}

// NewTree is a convenience function that allocates a Tree and initializes it
// from ft.
func NewTree(ft *FrequencyTable) (*Tree, error) {
	t := new(Tree)
	if err := t.Init(ft); err != nil {
		return nil, err
	}
	return t, nil
}

// Init initializes this Tree with an optimal code tree for the frequencies
// in ft.
//
// The builder repeatedly pops the two smallest nodes from a min-heap,
// making the first one popped the left child (bit 0) and the second one the
// right child (bit 1) of a new internal node, until a single node remains.
// Nodes are ordered by:
//
//   1. frequency, ascending;
//   2. leaves before internal nodes;
//   3. leaves by Symbol, ascending; internal nodes by creation order.
//
// The order depends only on the (symbol, frequency) pairs and not on the
// insertion order of ft, so any two tables with the same contents produce
// the same tree.
//
// A table with a single entry produces a Tree whose root is that leaf.  An
// empty table yields ErrEmptyTable.
//
func (t *Tree) Init(ft *FrequencyTable) error {
	*t = Tree{}

	numLeaves := ft.Len()
	if numLeaves == 0 {
		return ErrEmptyTable
	}

	nodes := make([]treeNode, 0, 2*numLeaves-1)
	refs := make([]nodeRef, 0, numLeaves)
	for _, symbol := range ft.order {
		assert.Assertf(symbol >= 0, "negative symbol %d in frequency table", symbol)
		freq := ft.counts[symbol]
		id := NodeID(len(nodes))
		nodes = append(nodes, treeNode{symbol: symbol, freq: freq, left: InvalidNode, right: InvalidNode})
		refs = append(refs, nodeRef{id: id, symbol: symbol, freq: freq})
	}

	h := nodeHeap{refs}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeRef)
		b := heap.Pop(&h).(nodeRef)

		id := NodeID(len(nodes))
		freq := addSaturating(a.freq, b.freq)
		nodes = append(nodes, treeNode{symbol: InvalidSymbol, freq: freq, left: a.id, right: b.id})
		heap.Push(&h, nodeRef{id: id, symbol: InvalidSymbol, freq: freq})
	}

	root := heap.Pop(&h).(nodeRef)
	assert.Assertf(int(root.id) == len(nodes)-1, "root %d is not the last node of %d", root.id, len(nodes))

	*t = Tree{
		nodes:     nodes,
		numLeaves: numLeaves,
	}
	return nil
}

// Root returns the root node, or InvalidNode if the Tree is empty.
func (t *Tree) Root() NodeID {
	return NodeID(len(t.nodes)) - 1
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the size of the alphabet.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// Total returns the frequency of the root, which is the sum of all leaf
// frequencies.  An empty Tree has a total of 0.
func (t *Tree) Total() uint64 {
	if len(t.nodes) == 0 {
		return 0
	}
	return t.nodes[t.Root()].freq
}

// IsLeaf reports whether id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].left == InvalidNode
}

// Symbol returns the symbol of a leaf, or InvalidSymbol for an internal node.
func (t *Tree) Symbol(id NodeID) Symbol {
	return t.nodes[id].symbol
}

// Freq returns the frequency of a node.
func (t *Tree) Freq(id NodeID) uint64 {
	return t.nodes[id].freq
}

// Left returns the left (bit 0) child of id, or InvalidNode for a leaf.
func (t *Tree) Left(id NodeID) NodeID {
	return t.nodes[id].left
}

// Right returns the right (bit 1) child of id, or InvalidNode for a leaf.
func (t *Tree) Right(id NodeID) NodeID {
	return t.nodes[id].right
}

// Child returns the child of id selected by bit: false for left, true for
// right.
func (t *Tree) Child(id NodeID, bit bool) NodeID {
	if bit {
		return t.nodes[id].right
	}
	return t.nodes[id].left
}

// WeightedPathLength returns the sum over all leaves of depth × frequency,
// which is also the number of bits needed to encode the data the tree was
// built from.  A lone root leaf counts as depth 1, matching the one-bit
// code it is assigned.
func (t *Tree) WeightedPathLength() uint64 {
	if len(t.nodes) == 0 {
		return 0
	}
	if len(t.nodes) == 1 {
		return t.nodes[0].freq
	}

	type stackItem struct {
		id    NodeID
		depth uint64
	}

	var sum uint64
	stack := []stackItem{{t.Root(), 0}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[top.id]
		if node.left == InvalidNode {
			sum = addSaturating(sum, top.depth*node.freq)
			continue
		}
		stack = append(stack, stackItem{node.right, top.depth + 1})
		stack = append(stack, stackItem{node.left, top.depth + 1})
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the Tree's nodes to
// the given writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.Root())
	for index, node := range t.nodes {
		if node.left == InvalidNode {
			fmt.Fprintf(&buf, "\tNode(%d) = leaf {symbol: %d, freq: %d}\n", index, node.symbol, node.freq)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = internal {freq: %d, left: %d, right: %d}\n", index, node.freq, node.left, node.right)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
