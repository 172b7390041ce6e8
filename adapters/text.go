package adapters

import (
	"unicode/utf8"

	"github.com/rmarchant/bitpress"
)

// Text treats the medium as UTF-8 text, one symbol per rune. It carries no
// metadata: the decoded symbol stream is the text.
type Text struct{}

func (Text) ToSymbols(media []byte) ([]bitpress.Symbol, *bitpress.RasterMeta, error) {
	if !utf8.Valid(media) {
		return nil, nil, bitpress.ErrInvalidArgument.WithMessage(
			"text payload is not valid UTF-8")
	}
	return []bitpress.Symbol(string(media)), nil, nil
}

func (Text) FromSymbols(symbols []bitpress.Symbol, meta *bitpress.RasterMeta) ([]byte, error) {
	if meta != nil {
		return nil, bitpress.ErrInvalidArgument.WithMessage(
			"text containers carry no raster metadata")
	}
	return []byte(string(symbols)), nil
}

func (Text) OutputExtension() string {
	return ".txt"
}
