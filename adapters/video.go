package adapters

import (
	"github.com/rmarchant/bitpress"
)

// Video handles video files as opaque byte streams, one symbol per byte.
// Frame structure is whatever the payload's own format says it is; nothing
// here or in the container interprets it.
type Video struct{}

func (Video) ToSymbols(media []byte) ([]bitpress.Symbol, *bitpress.RasterMeta, error) {
	return bytesToSymbols(media), nil, nil
}

func (Video) FromSymbols(symbols []bitpress.Symbol, meta *bitpress.RasterMeta) ([]byte, error) {
	if meta != nil {
		return nil, bitpress.ErrInvalidArgument.WithMessage(
			"video containers carry no raster metadata")
	}
	return symbolsToBytes(symbols)
}

func (Video) OutputExtension() string {
	return ".mp4"
}
