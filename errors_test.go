package bitpress_test

import (
	"errors"
	"testing"

	"github.com/rmarchant/bitpress"
	"github.com/stretchr/testify/assert"
)

func TestCodecErrorWithMessage(t *testing.T) {
	newErr := bitpress.ErrContainerFormat.WithMessage("asdfqwerty")
	assert.Equal(
		t, "Malformed container: asdfqwerty", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, bitpress.ErrContainerFormat)
}

func TestCodecErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := bitpress.ErrDecodeDesync.Wrap(originalErr)
	expectedMessage := "No codeword matches the remaining bits: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, bitpress.ErrDecodeDesync, "sentinel not set as parent")
}

func TestParseMediaKind(t *testing.T) {
	for name, expected := range map[string]bitpress.MediaKind{
		"text":  bitpress.KindText,
		"IMAGE": bitpress.KindImage,
		"Audio": bitpress.KindAudio,
		"video": bitpress.KindVideo,
	} {
		kind, err := bitpress.ParseMediaKind(name)
		assert.NoError(t, err)
		assert.Equal(t, expected, kind)
	}

	_, err := bitpress.ParseMediaKind("hologram")
	assert.ErrorIs(t, err, bitpress.ErrUnsupportedMediaKind)
}
