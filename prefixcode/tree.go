package prefixcode

import (
	"github.com/rmarchant/bitpress"
)

// TreeNode is a node of the code tree. A node is either a leaf, carrying
// exactly one symbol and that symbol's occurrence count as its weight, or an
// internal node owning exactly two children with weight equal to the sum of
// theirs. There is no one-child shape; the tree is strictly binary.
type TreeNode struct {
	// Symbol is only meaningful on leaves.
	Symbol bitpress.Symbol
	Weight int
	Left   *TreeNode
	Right  *TreeNode
}

// IsLeaf reports whether the node carries a symbol rather than children.
func (node *TreeNode) IsLeaf() bool {
	return node.Left == nil && node.Right == nil
}

// LeafCount returns the number of leaves under (and including) the node.
func (node *TreeNode) LeafCount() int {
	if node.IsLeaf() {
		return 1
	}
	return node.Left.LeafCount() + node.Right.LeafCount()
}

// Build constructs a full binary code tree over the distinct symbols of the
// stream and returns its root. Leaves are created in order of each symbol's
// first appearance, weighted by its total count; the merge loop then pairs
// the front two nodes of the work list and appends the parent at the back
// until a single root remains (see the package comment for why the pairing
// is positional rather than weight-minimal).
//
// A stream with one distinct symbol yields a tree that is a single leaf.
// An empty stream fails with [bitpress.ErrEmptyInput].
func Build(symbols []bitpress.Symbol) (*TreeNode, error) {
	if len(symbols) == 0 {
		return nil, bitpress.ErrEmptyInput
	}

	counts := make(map[bitpress.Symbol]int, len(symbols))
	firstSeen := make([]bitpress.Symbol, 0, len(symbols))
	for _, symbol := range symbols {
		if _, seen := counts[symbol]; !seen {
			firstSeen = append(firstSeen, symbol)
		}
		counts[symbol]++
	}

	nodes := make([]*TreeNode, len(firstSeen))
	for i, symbol := range firstSeen {
		nodes[i] = &TreeNode{Symbol: symbol, Weight: counts[symbol]}
	}

	for len(nodes) > 1 {
		left := nodes[0]
		right := nodes[1]
		parent := &TreeNode{
			Weight: left.Weight + right.Weight,
			Left:   left,
			Right:  right,
		}
		nodes = append(nodes[2:], parent)
	}
	return nodes[0], nil
}
