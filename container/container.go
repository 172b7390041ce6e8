// Package container frames a code table, a packed bit stream, and (for
// rasters) reconstruction metadata into a single persisted file, and inverts
// that framing.
//
// On-disk layout, all integers little-endian:
//
//	offset  size  field
//	0       4     magic "BPRS"
//	4       1     format version (currently 1)
//	5       1     media kind (0 text, 1 image, 2 audio, 3 video)
//	6       4     code table entry count N
//	10      ...   N table entries: symbol (uint32), codeword bit length
//	              (uint8), codeword bits packed into ceil(len/8) bytes
//	...     8     payload bit length (uint64)
//	...     ...   payload bits, ceil(bitLength/8) bytes
//	...     11    raster metadata, image kind only: width (uint32), height
//	              (uint32), channels (uint16), padding bit count (uint8)
//
// The whole container is assembled in memory and written in one WriteFile
// call; there is no partial or append mode. Read pulls the whole file into
// memory before parsing. Both directions treat any shape mismatch as
// [bitpress.ErrContainerFormat].
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	bitmap "github.com/boljen/go-bitmap"
	"github.com/noxer/bytewriter"
	"github.com/rmarchant/bitpress"
	"github.com/rmarchant/bitpress/prefixcode"
)

var magic = [4]byte{'B', 'P', 'R', 'S'}

// FormatVersion is the container layout version this package writes. Readers
// reject any other value; the version byte exists precisely so a future
// layout change doesn't get misparsed as this one.
const FormatVersion = 1

// Container is the in-memory form of one persisted compression artifact. It
// is assembled once per compress call and never mutated after Write.
type Container struct {
	Kind  bitpress.MediaKind
	Table prefixcode.CodeTable
	Bits  *prefixcode.BitString

	// Raster must be non-nil exactly when Kind is KindImage.
	Raster *bitpress.RasterMeta
}

const maxCodewordBits = 255

// Write serializes the container and persists it at the given path in a
// single all-or-nothing operation. Nothing is written to disk if any part of
// the serialization fails.
func Write(path string, cont *Container) error {
	payload, err := serialize(cont)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return bitpress.ErrContainerFormat.Wrap(err)
	}
	return nil
}

// Read loads and parses the container at the given path. The caller checks
// the Kind against the media kind it expected; Read only validates internal
// consistency.
func Read(path string) (*Container, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bitpress.ErrNotFound.Wrap(err)
		}
		return nil, bitpress.ErrContainerFormat.Wrap(err)
	}
	return deserialize(raw)
}

func serialize(cont *Container) ([]byte, error) {
	if (cont.Kind == bitpress.KindImage) != (cont.Raster != nil) {
		return nil, bitpress.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"raster metadata must be present for image containers and absent"+
				" otherwise, kind is %s", cont.Kind))
	}

	totalSize := 4 + 1 + 1 + 4
	for _, codeword := range cont.Table {
		if len(codeword) > maxCodewordBits {
			return nil, bitpress.ErrInvalidArgument.WithMessage(fmt.Sprintf(
				"codeword is %d bits, the format caps them at %d",
				len(codeword), maxCodewordBits))
		}
		totalSize += 4 + 1 + packedLen(len(codeword))
	}
	totalSize += 8 + packedLen(cont.Bits.Len())
	if cont.Raster != nil {
		totalSize += 4 + 4 + 2 + 1
	}

	buffer := make([]byte, totalSize)
	writer := bytewriter.New(buffer)

	writer.Write(magic[:])
	writer.Write([]byte{FormatVersion, byte(cont.Kind)})

	binary.Write(writer, binary.LittleEndian, uint32(len(cont.Table)))
	for symbol, codeword := range cont.Table {
		binary.Write(writer, binary.LittleEndian, uint32(symbol))
		writer.Write([]byte{byte(len(codeword))})
		packed, err := packCodeword(codeword)
		if err != nil {
			return nil, err
		}
		writer.Write(packed)
	}

	binary.Write(writer, binary.LittleEndian, uint64(cont.Bits.Len()))
	writer.Write(cont.Bits.Packed())

	if cont.Raster != nil {
		binary.Write(writer, binary.LittleEndian, cont.Raster.Width)
		binary.Write(writer, binary.LittleEndian, cont.Raster.Height)
		binary.Write(writer, binary.LittleEndian, cont.Raster.Channels)
		writer.Write([]byte{cont.Raster.PaddingBits})
	}

	return buffer, nil
}

func deserialize(raw []byte) (*Container, error) {
	reader := bytes.NewReader(raw)

	var header struct {
		Magic   [4]byte
		Version uint8
		Kind    uint8
	}
	if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
		return nil, bitpress.ErrContainerFormat.WithMessage(
			"file too short for a container header")
	}
	if header.Magic != magic {
		return nil, bitpress.ErrContainerFormat.WithMessage(
			"bad magic, not a bitpress container")
	}
	if header.Version != FormatVersion {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"unsupported format version %d, this build reads version %d",
			header.Version, FormatVersion))
	}
	kind := bitpress.MediaKind(header.Kind)
	if kind > bitpress.KindVideo {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"unknown media kind byte %d", header.Kind))
	}

	var entryCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &entryCount); err != nil {
		return nil, truncated("code table entry count", err)
	}

	// Each entry takes at least six bytes, so an entry count the remaining
	// bytes can't possibly hold is a lie. Checking up front keeps a corrupt
	// count from driving a giant allocation below.
	if uint64(entryCount)*6 > uint64(reader.Len()) {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"code table claims %d entries but only %d bytes remain",
			entryCount, reader.Len()))
	}

	table := make(prefixcode.CodeTable, entryCount)
	for i := uint32(0); i < entryCount; i++ {
		var entry struct {
			Symbol  uint32
			BitsLen uint8
		}
		if err := binary.Read(reader, binary.LittleEndian, &entry); err != nil {
			return nil, truncated("code table entry", err)
		}
		if entry.BitsLen == 0 {
			return nil, bitpress.ErrContainerFormat.WithMessage(
				"zero-length codeword in code table")
		}
		packed := make([]byte, packedLen(int(entry.BitsLen)))
		if _, err := io.ReadFull(reader, packed); err != nil {
			return nil, truncated("codeword bits", err)
		}
		symbol := bitpress.Symbol(entry.Symbol)
		if _, dup := table[symbol]; dup {
			return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
				"symbol %d appears twice in the code table", entry.Symbol))
		}
		table[symbol] = unpackCodeword(packed, int(entry.BitsLen))
	}

	var bitLength uint64
	if err := binary.Read(reader, binary.LittleEndian, &bitLength); err != nil {
		return nil, truncated("payload bit length", err)
	}
	if bitLength > uint64(reader.Len())*8 {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"payload claims %d bits but only %d bytes remain", bitLength, reader.Len()))
	}
	packedBits := make([]byte, packedLen(int(bitLength)))
	if _, err := io.ReadFull(reader, packedBits); err != nil {
		return nil, truncated("payload bits", err)
	}
	bits, err := prefixcode.BitStringFromPacked(packedBits, int(bitLength))
	if err != nil {
		return nil, err
	}

	cont := &Container{Kind: kind, Table: table, Bits: bits}
	if kind == bitpress.KindImage {
		var meta struct {
			Width       uint32
			Height      uint32
			Channels    uint16
			PaddingBits uint8
		}
		if err := binary.Read(reader, binary.LittleEndian, &meta); err != nil {
			return nil, truncated("raster metadata", err)
		}
		if meta.PaddingBits > 6 {
			return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
				"padding bit count %d is out of range [0, 6]", meta.PaddingBits))
		}
		cont.Raster = &bitpress.RasterMeta{
			Width:       meta.Width,
			Height:      meta.Height,
			Channels:    meta.Channels,
			PaddingBits: meta.PaddingBits,
		}
	}

	if reader.Len() != 0 {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"%d trailing bytes after the %s container payload", reader.Len(), kind))
	}
	return cont, nil
}

func truncated(section string, err error) error {
	return bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
		"truncated while reading %s: %s", section, err))
}

func packedLen(bits int) int {
	return (bits + 7) / 8
}

func packCodeword(codeword string) ([]byte, error) {
	packed := make([]byte, packedLen(len(codeword)))
	for i, digit := range codeword {
		switch digit {
		case '0':
			// already zero
		case '1':
			bitmap.Set(packed, i, true)
		default:
			return nil, bitpress.ErrInvalidArgument.WithMessage(fmt.Sprintf(
				"codeword %q contains %q, expected only 0 and 1", codeword, digit))
		}
	}
	return packed, nil
}

func unpackCodeword(packed []byte, bitCount int) string {
	digits := make([]byte, bitCount)
	for i := 0; i < bitCount; i++ {
		if bitmap.Get(packed, i) {
			digits[i] = '1'
		} else {
			digits[i] = '0'
		}
	}
	return string(digits)
}
