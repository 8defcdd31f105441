package phuffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// MaxDataSize is the largest raw input accepted by a single
// table-construction call.  The bound also caps the worst-case tree
// depth well below MaxCodeLen: the rarest possible merge chain grows
// Fibonacci-fashion, so one mebibyte of input cannot produce a
// codelength anywhere near 32 bits.
const MaxDataSize = 1 << 20

// symbolDepth is a resolved (symbol, codelength) pair.
type symbolDepth struct {
	symbol Symbol
	depth  byte
}

// treeNode is a transient node of the merge tree.  A node is either a
// leaf owning a symbol or an internal node owning exactly two
// children.  The whole tree is discarded once leaf depths have been
// extracted.
type treeNode struct {
	symbol Symbol
	leaf   bool
	left   *treeNode
	right  *treeNode
}

// resolveDepths computes the optimal codelength for every symbol that
// occurs in data.  Symbols with zero occurrences are dropped.  If only
// one distinct symbol occurs it is assigned depth 1: every emitted
// symbol must cost at least one bit.
func resolveDepths(data []byte) []symbolDepth {
	assert.Assertf(len(data) > 0, "cannot resolve codelengths from empty data")
	assert.Assertf(len(data) <= MaxDataSize, "data size %d > MaxDataSize %d", len(data), MaxDataSize)

	var freqs [AlphabetSize]uint32
	for _, b := range data {
		freqs[b]++
	}

	h := nodeHeap{}
	for symbol := 0; symbol < AlphabetSize; symbol++ {
		if freqs[symbol] != 0 {
			h.list = append(h.list, weightedNode{
				node:   &treeNode{symbol: Symbol(symbol), leaf: true},
				weight: uint64(freqs[symbol]),
				seq:    len(h.list),
			})
		}
	}

	if len(h.list) == 1 {
		return []symbolDepth{{symbol: h.list[0].node.symbol, depth: 1}}
	}

	// Greedy merge: repeatedly join the two lightest entries under a
	// new internal node until one root remains.  Ties break by
	// insertion order, which keeps the merge deterministic; only the
	// leaf depths matter downstream, not the tree topology.
	h.Init()
	for h.Len() > 1 {
		a := heap.Pop(&h).(weightedNode)
		b := heap.Pop(&h).(weightedNode)
		heap.Push(&h, weightedNode{
			node:   &treeNode{left: a.node, right: b.node},
			weight: a.weight + b.weight,
			seq:    a.seq,
		})
	}
	root := heap.Pop(&h).(weightedNode).node

	// Walk the tree, recording each leaf's distance from the root.
	// Internal depths are not kept; the nodes themselves become
	// garbage as soon as this returns.
	type stackItem struct {
		node  *treeNode
		depth byte
	}
	leaves := make([]symbolDepth, 0, AlphabetSize)
	stack := []stackItem{{node: root}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.node.leaf {
			leaves = append(leaves, symbolDepth{symbol: top.node.symbol, depth: top.depth})
			continue
		}
		stack = append(stack,
			stackItem{node: top.node.left, depth: top.depth + 1},
			stackItem{node: top.node.right, depth: top.depth + 1})
	}
	return leaves
}

// type weightedNode + type nodeHeap {{{

type weightedNode struct {
	node   *treeNode
	weight uint64
	seq    int
}

type nodeHeap struct {
	list []weightedNode
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
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(weightedNode))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
