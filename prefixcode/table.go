package prefixcode

import (
	"github.com/rmarchant/bitpress"
)

// CodeTable maps each symbol to its codeword, written as a string of '0' and
// '1' characters. Tables produced by [Derive] are prefix-free: no codeword is
// a prefix of another, which is what makes [Decode] unambiguous.
type CodeTable map[bitpress.Symbol]string

// The codeword assigned to the sole symbol of a one-leaf tree. The root-to-
// leaf path of such a tree is empty, and an empty codeword can't be encoded
// into a non-empty bit stream, so the degenerate case gets a fixed single bit.
const degenerateCodeword = "0"

// Derive walks the tree from the root and assigns each leaf's symbol the
// bit path taken to reach it: '0' for a left descent, '1' for a right one.
// The walk uses an explicit stack instead of recursion; a maximally skewed
// tree is as deep as the alphabet is large, which is more than the goroutine
// stack should be asked to absorb for raster alphabets.
//
// The result has exactly one entry per leaf. Derive is a pure function of
// the tree.
func Derive(root *TreeNode) CodeTable {
	type frame struct {
		node   *TreeNode
		prefix string
	}

	table := make(CodeTable, root.LeafCount())
	stack := []frame{{root, ""}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.node.IsLeaf() {
			codeword := current.prefix
			if codeword == "" {
				codeword = degenerateCodeword
			}
			table[current.node.Symbol] = codeword
			continue
		}

		// Push right first so the left child is visited first, matching the
		// root-to-leaf reading order of the codewords.
		stack = append(stack, frame{current.node.Right, current.prefix + "1"})
		stack = append(stack, frame{current.node.Left, current.prefix + "0"})
	}
	return table
}
