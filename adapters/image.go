package adapters

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
	"github.com/rmarchant/bitpress"
)

// Image handles uncompressed Windows bitmaps (BI_RGB, 24- or 32-bit). The
// raster's pixel bytes are flattened to a bit stream, right-padded with zero
// bits to a multiple of seven, and chopped into 7-bit symbols; the pad count
// plus the raster dimensions ride along as container metadata.
type Image struct{}

// bitsPerSymbol is the group size the pixel bit stream is chopped into. Seven
// keeps every symbol in the 7-bit code point range.
const bitsPerSymbol = 7

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
)

// bmpInfoHeader is the BITMAPINFOHEADER layout, read and written with
// binary.Read/Write in little-endian order.
type bmpInfoHeader struct {
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

func (Image) ToSymbols(media []byte) ([]bitpress.Symbol, *bitpress.RasterMeta, error) {
	meta, pixels, err := parseBMP(media)
	if err != nil {
		return nil, nil, err
	}

	symbols, paddingBits := rasterToSymbols(pixels)
	meta.PaddingBits = paddingBits
	return symbols, meta, nil
}

func (Image) FromSymbols(symbols []bitpress.Symbol, meta *bitpress.RasterMeta) ([]byte, error) {
	if meta == nil {
		return nil, bitpress.ErrContainerFormat.WithMessage(
			"image container is missing its raster metadata")
	}
	pixels, err := symbolsToRaster(symbols, meta.PaddingBits)
	if err != nil {
		return nil, err
	}
	return BuildBMP(meta, pixels)
}

func (Image) OutputExtension() string {
	return ".bmp"
}

// rasterToSymbols flattens the pixel bytes into a most-significant-bit-first
// bit stream, zero-pads it up to a multiple of bitsPerSymbol, and reads it
// back out one symbol per group. The returned pad count is what the inverse
// needs to strip.
func rasterToSymbols(pixels []byte) ([]bitpress.Symbol, uint8) {
	bitLength := len(pixels) * 8
	paddingBits := (bitsPerSymbol - bitLength%bitsPerSymbol) % bitsPerSymbol

	symbols := make([]bitpress.Symbol, 0, (bitLength+paddingBits)/bitsPerSymbol)
	var group uint16
	groupBits := 0
	flush := func() {
		symbols = append(symbols, bitpress.Symbol(group))
		group = 0
		groupBits = 0
	}

	for _, pixelByte := range pixels {
		for shift := 7; shift >= 0; shift-- {
			group = group<<1 | uint16(pixelByte>>shift&1)
			groupBits++
			if groupBits == bitsPerSymbol {
				flush()
			}
		}
	}
	if groupBits > 0 {
		group <<= uint(bitsPerSymbol - groupBits)
		flush()
	}
	return symbols, uint8(paddingBits)
}

// symbolsToRaster is the exact inverse of rasterToSymbols: spell each symbol
// back out as seven bits, drop the trailing pad bits, and regroup into bytes.
func symbolsToRaster(symbols []bitpress.Symbol, paddingBits uint8) ([]byte, error) {
	totalBits := len(symbols)*bitsPerSymbol - int(paddingBits)
	if totalBits < 0 || totalBits%8 != 0 {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"%d symbols minus %d pad bits isn't a whole number of bytes",
			len(symbols), paddingBits))
	}

	pixels := make([]byte, totalBits/8)
	bitPos := 0
	for _, symbol := range symbols {
		if symbol < 0 || symbol >= 1<<bitsPerSymbol {
			return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
				"symbol %d is outside the 7-bit raster alphabet", symbol))
		}
		for shift := bitsPerSymbol - 1; shift >= 0; shift-- {
			if bitPos == totalBits {
				break
			}
			if symbol>>uint(shift)&1 == 1 {
				pixels[bitPos/8] |= 1 << uint(7-bitPos%8)
			}
			bitPos++
		}
	}
	return pixels, nil
}

// parseBMP validates the bitmap headers and returns the raster dimensions
// plus the pixel array with per-row alignment padding stripped. Rows are kept
// in their stored bottom-up order; BuildBMP writes them back the same way, so
// the round trip is pixel-exact.
func parseBMP(media []byte) (*bitpress.RasterMeta, []byte, error) {
	if len(media) < bmpFileHeaderSize+bmpInfoHeaderSize {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(
			"file too short to be a bitmap")
	}
	if media[0] != 'B' || media[1] != 'M' {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(
			"missing BM signature, not a bitmap")
	}

	dataOffset := binary.LittleEndian.Uint32(media[10:14])

	var info bmpInfoHeader
	infoReader := bytes.NewReader(media[bmpFileHeaderSize:])
	if err := binary.Read(infoReader, binary.LittleEndian, &info); err != nil {
		return nil, nil, bitpress.ErrInvalidArgument.Wrap(err)
	}

	if info.HeaderSize < bmpInfoHeaderSize {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"unsupported DIB header size %d", info.HeaderSize))
	}
	if info.Compression != 0 {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(
			"only uncompressed (BI_RGB) bitmaps are supported")
	}
	if info.BitsPerPixel != 24 && info.BitsPerPixel != 32 {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"unsupported color depth %d bpp, expected 24 or 32", info.BitsPerPixel))
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"unsupported bitmap dimensions %dx%d", info.Width, info.Height))
	}

	channels := info.BitsPerPixel / 8
	rowBytes := int(info.Width) * int(channels)
	strideBytes := alignRow(rowBytes)
	pixelBytesNeeded := strideBytes * int(info.Height)
	if int(dataOffset)+pixelBytesNeeded > len(media) {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"pixel array is truncated, need %d bytes at offset %d but the file"+
				" is %d bytes", pixelBytesNeeded, dataOffset, len(media)))
	}

	pixels := make([]byte, 0, rowBytes*int(info.Height))
	for row := 0; row < int(info.Height); row++ {
		start := int(dataOffset) + row*strideBytes
		pixels = append(pixels, media[start:start+rowBytes]...)
	}

	meta := &bitpress.RasterMeta{
		Width:    uint32(info.Width),
		Height:   uint32(info.Height),
		Channels: channels,
	}
	return meta, pixels, nil
}

// BuildBMP reassembles a minimal BITMAPINFOHEADER bitmap around the raw pixel
// rows.
func BuildBMP(meta *bitpress.RasterMeta, pixels []byte) ([]byte, error) {
	if meta.Channels != 3 && meta.Channels != 4 {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"raster metadata has %d channels, expected 3 or 4", meta.Channels))
	}
	rowBytes := int(meta.Width) * int(meta.Channels)
	if rowBytes == 0 || len(pixels) != rowBytes*int(meta.Height) {
		return nil, bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"decoded %d pixel bytes but a %dx%dx%d raster needs %d",
			len(pixels), meta.Width, meta.Height, meta.Channels,
			rowBytes*int(meta.Height)))
	}

	strideBytes := alignRow(rowBytes)
	pixelArraySize := strideBytes * int(meta.Height)
	fileSize := bmpFileHeaderSize + bmpInfoHeaderSize + pixelArraySize

	buffer := make([]byte, fileSize)
	writer := bytewriter.New(buffer)

	writer.Write([]byte{'B', 'M'})
	binary.Write(writer, binary.LittleEndian, uint32(fileSize))
	binary.Write(writer, binary.LittleEndian, uint32(0)) // reserved
	binary.Write(writer, binary.LittleEndian, uint32(bmpFileHeaderSize+bmpInfoHeaderSize))

	info := bmpInfoHeader{
		HeaderSize:   bmpInfoHeaderSize,
		Width:        int32(meta.Width),
		Height:       int32(meta.Height),
		Planes:       1,
		BitsPerPixel: meta.Channels * 8,
		ImageSize:    uint32(pixelArraySize),
	}
	binary.Write(writer, binary.LittleEndian, &info)

	rowPadding := make([]byte, strideBytes-rowBytes)
	for row := 0; row < int(meta.Height); row++ {
		writer.Write(pixels[row*rowBytes : (row+1)*rowBytes])
		writer.Write(rowPadding)
	}
	return buffer, nil
}

// alignRow rounds a row's byte count up to the 4-byte boundary BMP requires.
func alignRow(rowBytes int) int {
	return (rowBytes + 3) &^ 3
}
