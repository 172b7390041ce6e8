package press_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmarchant/bitpress"
	"github.com/rmarchant/bitpress/press"
	bt "github.com/rmarchant/bitpress/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressText(t *testing.T) {
	sourcePath := bt.WriteTempFile(t, "sample.txt", []byte("aabbbcc"))

	containerPath, err := press.Compress(sourcePath, bitpress.KindText)
	require.NoError(t, err)
	assert.Equal(t, sourcePath+".bpk", containerPath)

	outputPath, err := press.Decompress(containerPath, bitpress.KindText)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(outputPath, "_restored.txt"))

	restored, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "aabbbcc", string(restored))
}

func TestCompressDecompressLargerText(t *testing.T) {
	original := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 40) +
		"¡con acentos y eñes también!\n"
	sourcePath := bt.WriteTempFile(t, "fox.txt", []byte(original))

	containerPath, err := press.Compress(sourcePath, bitpress.KindText)
	require.NoError(t, err)

	outputPath, err := press.Decompress(containerPath, bitpress.KindText)
	require.NoError(t, err)

	restored, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(restored))
}

func TestCompressDecompressImage(t *testing.T) {
	media := bt.CreateBMPFixture(17, 9, t)
	sourcePath := bt.WriteTempFile(t, "raster.bmp", media)

	containerPath, err := press.Compress(sourcePath, bitpress.KindImage)
	require.NoError(t, err)

	outputPath, err := press.Decompress(containerPath, bitpress.KindImage)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(outputPath, "_restored.bmp"))

	restored, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, media, restored, "restored bitmap differs from the source")
}

func TestCompressDecompressAudio(t *testing.T) {
	media := []byte("RIFF\x10\x00\x00\x00WAVEfmt ")
	for i := 0; i < 500; i++ {
		media = append(media, byte(i%251))
	}
	sourcePath := bt.WriteTempFile(t, "tone.wav", media)

	containerPath, err := press.Compress(sourcePath, bitpress.KindAudio)
	require.NoError(t, err)

	outputPath, err := press.Decompress(containerPath, bitpress.KindAudio)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(outputPath, "_restored.wav"))

	restored, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, media, restored)
}

func TestCompressDecompressVideo(t *testing.T) {
	media := make([]byte, 1024)
	for i := range media {
		media[i] = byte((i * i) % 256)
	}
	sourcePath := bt.WriteTempFile(t, "clip.mp4", media)

	containerPath, err := press.Compress(sourcePath, bitpress.KindVideo)
	require.NoError(t, err)

	outputPath, err := press.Decompress(containerPath, bitpress.KindVideo)
	require.NoError(t, err)

	restored, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, media, restored)
}

func TestCompressMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	_, err := press.Compress(missing, bitpress.KindText)
	assert.ErrorIs(t, err, bitpress.ErrNotFound)

	_, statErr := os.Stat(missing + ".bpk")
	assert.True(t, os.IsNotExist(statErr), "no container may be written on failure")
}

func TestCompressEmptySource(t *testing.T) {
	sourcePath := bt.WriteTempFile(t, "empty.txt", nil)

	_, err := press.Compress(sourcePath, bitpress.KindText)
	assert.ErrorIs(t, err, bitpress.ErrEmptyInput)

	_, statErr := os.Stat(sourcePath + ".bpk")
	assert.True(t, os.IsNotExist(statErr), "no container may be written on failure")
}

func TestDecompressKindMismatch(t *testing.T) {
	sourcePath := bt.WriteTempFile(t, "sample.txt", []byte("mismatched kinds"))
	containerPath, err := press.Compress(sourcePath, bitpress.KindText)
	require.NoError(t, err)

	_, err = press.Decompress(containerPath, bitpress.KindAudio)
	assert.ErrorIs(t, err, bitpress.ErrContainerFormat)
}

func TestDecompressCorruptedPayload(t *testing.T) {
	// A single-symbol stream codes as all-zero bits against the one-entry
	// table {'x': "0"}, so any 1 bit in the payload is provably not a
	// concatenation of codewords. That must surface as a desync, never as
	// silently garbled text.
	sourcePath := bt.WriteTempFile(t, "sample.txt", []byte("xxx"))
	containerPath, err := press.Compress(sourcePath, bitpress.KindText)
	require.NoError(t, err)

	raw, err := os.ReadFile(containerPath)
	require.NoError(t, err)

	// The payload bits are the last byte of a metadata-free container.
	mutated := bt.CorruptFileAt(t, containerPath, int64(len(raw)-1), 0xFF)

	_, err = press.Decompress(mutated, bitpress.KindText)
	assert.ErrorIs(t, err, bitpress.ErrDecodeDesync)
}

func TestCompressDecompressSingleSymbolStream(t *testing.T) {
	sourcePath := bt.WriteTempFile(t, "mono.txt", []byte("xxxxxxxx"))

	containerPath, err := press.Compress(sourcePath, bitpress.KindText)
	require.NoError(t, err)

	outputPath, err := press.Decompress(containerPath, bitpress.KindText)
	require.NoError(t, err)

	restored, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "xxxxxxxx", string(restored))
}
