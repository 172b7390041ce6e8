package bitpress

import (
	"fmt"
	"strings"
)

// Symbol is one atomic unit of a stream being compressed. For text payloads a
// symbol is a rune; for rasters it's a 7-bit group of the pixel byte stream
// reinterpreted as a code point. The coding core never looks inside a symbol,
// it only needs equality and map-key semantics.
type Symbol = rune

// MediaKind selects which container variant and which adapter is used for a
// compress or decompress operation.
type MediaKind uint8

const (
	KindText MediaKind = iota
	KindImage
	KindAudio
	KindVideo
)

var mediaKindNames = map[MediaKind]string{
	KindText:  "text",
	KindImage: "image",
	KindAudio: "audio",
	KindVideo: "video",
}

func (kind MediaKind) String() string {
	name, ok := mediaKindNames[kind]
	if !ok {
		return fmt.Sprintf("MediaKind(%d)", uint8(kind))
	}
	return name
}

// ParseMediaKind converts a name like "text" or "image" into its [MediaKind].
// Matching is case-insensitive.
func ParseMediaKind(name string) (MediaKind, error) {
	lowered := strings.ToLower(name)
	for kind, kindName := range mediaKindNames {
		if kindName == lowered {
			return kind, nil
		}
	}
	return 0, ErrUnsupportedMediaKind.WithMessage(name)
}

// RasterMeta is the side information an image container must carry so the
// adapter can rebuild the raster from a decoded symbol stream. PaddingBits is
// the number of zero bits appended to the pixel bit stream to round it up to
// a multiple of seven; it is always in [0, 6].
type RasterMeta struct {
	Width       uint32
	Height      uint32
	Channels    uint16
	PaddingBits uint8
}

// Adapter is the interface a media handler must satisfy toward the coding
// core. ToSymbols projects the raw bytes of a medium onto a symbol sequence;
// FromSymbols inverts that projection using whatever metadata ToSymbols
// captured. Only the image adapter returns non-nil metadata.
//
// Adapters are pure byte reinterpretation. They never touch the code table,
// the bit stream, or the container file.
type Adapter interface {
	ToSymbols(media []byte) ([]Symbol, *RasterMeta, error)
	FromSymbols(symbols []Symbol, meta *RasterMeta) ([]byte, error)
	// OutputExtension returns the file extension (with leading dot) to use
	// when writing a reconstructed medium to disk.
	OutputExtension() string
}
