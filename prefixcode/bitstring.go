package prefixcode

import (
	"fmt"
	"strings"

	"github.com/boljen/go-bitmap"
	"github.com/rmarchant/bitpress"
)

// BitString is a growable bit sequence with byte-granular packed storage and
// an explicit bit length. The explicit length matters because the last byte
// of the packed form is usually only partially occupied; without it a reader
// could not tell payload bits from slack.
//
// Bit i of the sequence lives at bit position i of the packed buffer, in the
// bit order of github.com/boljen/go-bitmap. The container stores the packed
// buffer and the length verbatim, so this layout is part of the on-disk
// format.
type BitString struct {
	data   []byte
	length int
}

// NewBitString returns an empty bit string.
func NewBitString() *BitString {
	return &BitString{}
}

// BitStringFromPacked reconstitutes a bit string from its packed buffer and
// bit length, e.g. when reading a container back. The buffer must be exactly
// as long as the bit length requires.
func BitStringFromPacked(data []byte, bitLength int) (*BitString, error) {
	if bitLength < 0 {
		return nil, bitpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("bit length can't be negative, got %d", bitLength))
	}
	if expected := packedSize(bitLength); len(data) != expected {
		return nil, bitpress.ErrContainerFormat.WithMessage(
			fmt.Sprintf(
				"packed buffer is %d bytes, need exactly %d for %d bits",
				len(data), expected, bitLength))
	}
	buffer := make([]byte, len(data))
	copy(buffer, data)
	return &BitString{data: buffer, length: bitLength}, nil
}

func packedSize(bits int) int {
	return (bits + 7) / 8
}

// Len returns the number of bits in the string.
func (bs *BitString) Len() int {
	return bs.length
}

// Append adds a single bit to the end of the string.
func (bs *BitString) Append(bit bool) {
	if packedSize(bs.length+1) > len(bs.data) {
		bs.data = append(bs.data, 0)
	}
	bitmap.Set(bs.data, bs.length, bit)
	bs.length++
}

// AppendCodeword appends every bit of a '0'/'1' codeword string.
func (bs *BitString) AppendCodeword(codeword string) error {
	for _, digit := range codeword {
		switch digit {
		case '0':
			bs.Append(false)
		case '1':
			bs.Append(true)
		default:
			return bitpress.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("codeword may only contain 0 and 1, got %q", digit))
		}
	}
	return nil
}

// At returns bit i as 0 or 1. It panics if i is out of range, same as a
// slice index would.
func (bs *BitString) At(i int) int {
	if i < 0 || i >= bs.length {
		panic(fmt.Sprintf("bit index out of range [%d] with length %d", i, bs.length))
	}
	if bitmap.Get(bs.data, i) {
		return 1
	}
	return 0
}

// Truncate shortens the string to n bits. It panics if n exceeds the current
// length.
func (bs *BitString) Truncate(n int) {
	if n < 0 || n > bs.length {
		panic(fmt.Sprintf("can't truncate %d-bit string to %d bits", bs.length, n))
	}
	bs.length = n
	bs.data = bs.data[:packedSize(n)]
}

// Packed returns a copy of the packed buffer. Bits past Len() in the final
// byte are zero for freshly built strings but callers must not rely on it.
func (bs *BitString) Packed() []byte {
	buffer := make([]byte, len(bs.data))
	copy(buffer, bs.data)
	return buffer
}

// String renders the bits as a '0'/'1' string, mostly for tests and the
// container inspector.
func (bs *BitString) String() string {
	var builder strings.Builder
	builder.Grow(bs.length)
	for i := 0; i < bs.length; i++ {
		if bitmap.Get(bs.data, i) {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	return builder.String()
}
