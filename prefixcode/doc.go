// Package prefixcode implements the coding core: building a full binary code
// tree from a symbol stream, deriving a prefix-free symbol-to-codeword table
// from that tree, and encoding/decoding symbol streams against such a table.
//
// A note on the tree construction, because it is easy to "fix" by accident:
// [Build] pairs up the first two nodes of the work list and appends the merged
// parent at the back, repeating until one node remains. It does NOT pick the
// two lowest-weight nodes the way the classical minimum-redundancy (Huffman)
// construction does. The result is still a full binary tree, so every derived
// table is prefix-free and decoding is exact; the codeword lengths are just
// not guaranteed to be optimal. Containers already written with this pairing
// can only be read back by the same pairing, so the positional merge is part
// of the on-disk compatibility contract. Don't swap in a priority queue
// without versioning the container format.
//
// The construction is static: frequencies are counted once over the whole
// stream and the tree is built from that snapshot. Nothing adapts mid-stream.
package prefixcode
