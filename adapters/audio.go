package adapters

import (
	"bytes"

	"github.com/rmarchant/bitpress"
)

// Audio handles RIFF/WAVE files, one symbol per byte of the whole file. The
// WAV headers travel inside the symbol stream itself, so the container needs
// no extra metadata to rebuild a playable file.
type Audio struct{}

func (Audio) ToSymbols(media []byte) ([]bitpress.Symbol, *bitpress.RasterMeta, error) {
	if len(media) < 12 || !bytes.Equal(media[0:4], []byte("RIFF")) ||
		!bytes.Equal(media[8:12], []byte("WAVE")) {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(
			"missing RIFF/WAVE header, not a WAV file")
	}
	return bytesToSymbols(media), nil, nil
}

func (Audio) FromSymbols(symbols []bitpress.Symbol, meta *bitpress.RasterMeta) ([]byte, error) {
	if meta != nil {
		return nil, bitpress.ErrInvalidArgument.WithMessage(
			"audio containers carry no raster metadata")
	}
	return symbolsToBytes(symbols)
}

func (Audio) OutputExtension() string {
	return ".wav"
}

// bytesToSymbols lifts each byte to its own symbol, giving an alphabet of at
// most 256 entries.
func bytesToSymbols(media []byte) []bitpress.Symbol {
	symbols := make([]bitpress.Symbol, len(media))
	for i, b := range media {
		symbols[i] = bitpress.Symbol(b)
	}
	return symbols
}

func symbolsToBytes(symbols []bitpress.Symbol) ([]byte, error) {
	media := make([]byte, len(symbols))
	for i, symbol := range symbols {
		if symbol < 0 || symbol > 0xFF {
			return nil, bitpress.ErrContainerFormat.WithMessage(
				"decoded symbol does not fit in a byte")
		}
		media[i] = byte(symbol)
	}
	return media, nil
}
