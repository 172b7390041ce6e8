package prefixcode

import (
	"fmt"
	"strconv"

	"github.com/rmarchant/bitpress"
)

// Encode concatenates the codeword of every symbol in the stream, in stream
// order, into a packed bit string.
//
// The table is usually the one derived from this very stream, but the two
// arrive separately (the container layer pairs them back up on disk), so a
// missing codeword is checked for and fails with [bitpress.ErrUnknownSymbol]
// rather than assumed impossible.
func Encode(symbols []bitpress.Symbol, table CodeTable) (*BitString, error) {
	bits := NewBitString()
	for position, symbol := range symbols {
		codeword, known := table[symbol]
		if !known {
			return nil, bitpress.ErrUnknownSymbol.WithMessage(fmt.Sprintf(
				"symbol %s at position %d", strconv.QuoteRune(symbol), position))
		}
		if err := bits.AppendCodeword(codeword); err != nil {
			return nil, err
		}
	}
	return bits, nil
}

// decodeTrie is the bit-indexed lookup built once per Decode call. Walking
// one trie edge per input bit reaches a symbol in O(codeword length) instead
// of rescanning the whole table at every bit position.
type decodeTrie struct {
	children [2]*decodeTrie
	symbol   bitpress.Symbol
	terminal bool
}

func buildDecodeTrie(table CodeTable) (*decodeTrie, error) {
	root := &decodeTrie{}
	for symbol, codeword := range table {
		if codeword == "" {
			return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
				"empty codeword for symbol %s", strconv.QuoteRune(symbol)))
		}

		node := root
		for _, digit := range codeword {
			if digit != '0' && digit != '1' {
				return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
					"codeword %q for symbol %s contains %q",
					codeword, strconv.QuoteRune(symbol), digit))
			}
			if node.terminal {
				// Some other codeword is a strict prefix of this one. A table
				// from Derive can't do this; a hand-built or corrupted one can.
				return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
					"codeword %q for symbol %s extends another codeword",
					codeword, strconv.QuoteRune(symbol)))
			}
			branch := digit - '0'
			if node.children[branch] == nil {
				node.children[branch] = &decodeTrie{}
			}
			node = node.children[branch]
		}

		if node.terminal || node.children[0] != nil || node.children[1] != nil {
			return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
				"codeword %q for symbol %s collides with another codeword",
				codeword, strconv.QuoteRune(symbol)))
		}
		node.symbol = symbol
		node.terminal = true
	}
	return root, nil
}

// Decode consumes the bit string from the front, emitting a symbol every time
// the bits walked so far spell out a complete codeword, and stops exactly at
// the end of the bits.
//
// Two failure shapes both mean "corrupted container or wrong table" and both
// surface as [bitpress.ErrDecodeDesync]: reaching a bit no codeword continues
// through, and running out of bits in the middle of a codeword. The explicit
// checks are what keep a bad input from decoding to silent garbage.
func Decode(bits *BitString, table CodeTable) ([]bitpress.Symbol, error) {
	root, err := buildDecodeTrie(table)
	if err != nil {
		return nil, err
	}

	symbols := make([]bitpress.Symbol, 0, bits.Len())
	node := root
	for i := 0; i < bits.Len(); i++ {
		node = node.children[bits.At(i)]
		if node == nil {
			return nil, bitpress.ErrDecodeDesync.WithMessage(fmt.Sprintf(
				"no codeword matches at bit offset %d of %d", i, bits.Len()))
		}
		if node.terminal {
			symbols = append(symbols, node.symbol)
			node = root
		}
	}

	if node != root {
		return nil, bitpress.ErrDecodeDesync.WithMessage(
			"bit stream ends in the middle of a codeword")
	}
	return symbols, nil
}
