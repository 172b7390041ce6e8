package adapters

import (
	"github.com/rmarchant/bitpress"
)

// ForKind returns the adapter handling the given media kind.
func ForKind(kind bitpress.MediaKind) (bitpress.Adapter, error) {
	switch kind {
	case bitpress.KindText:
		return Text{}, nil
	case bitpress.KindImage:
		return Image{}, nil
	case bitpress.KindAudio:
		return Audio{}, nil
	case bitpress.KindVideo:
		return Video{}, nil
	default:
		return nil, bitpress.ErrUnsupportedMediaKind.WithMessage(kind.String())
	}
}
