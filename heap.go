package huffpack

import (
	"container/heap"
)

// type nodeRef + type nodeHeap {{{

type nodeRef struct {
	id     NodeID
	symbol Symbol
	freq   uint64
}

func (ref nodeRef) isLeaf() bool {
	return ref.symbol >= 0
}

// nodeHeap is a min-heap of tree nodes keyed by the total order described on
// Tree.Init.
type nodeHeap struct {
	list []nodeRef
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	return nodeLess(h.list[i], h.list[j])
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeRef))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

func nodeLess(a, b nodeRef) bool {
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	aLeaf, bLeaf := a.isLeaf(), b.isLeaf()
	if aLeaf != bLeaf {
		return aLeaf
	}
	if aLeaf {
		return a.symbol < b.symbol
	}
	return a.id < b.id
}

// }}}
