package container_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmarchant/bitpress"
	"github.com/rmarchant/bitpress/container"
	"github.com/rmarchant/bitpress/prefixcode"
	bt "github.com/rmarchant/bitpress/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestContainer(t *testing.T, kind bitpress.MediaKind, meta *bitpress.RasterMeta) *container.Container {
	table := prefixcode.CodeTable{'a': "10", 'b': "11", 'c': "0"}
	bits := prefixcode.NewBitString()
	require.NoError(t, bits.AppendCodeword("101011111100"))

	return &container.Container{Kind: kind, Table: table, Bits: bits, Raster: meta}
}

func writeTestContainer(t *testing.T, cont *container.Container) string {
	path := filepath.Join(t.TempDir(), "artifact.bpk")
	require.NoError(t, container.Write(path, cont))
	return path
}

func TestWriteReadRoundTripText(t *testing.T) {
	original := buildTestContainer(t, bitpress.KindText, nil)
	path := writeTestContainer(t, original)

	restored, err := container.Read(path)
	require.NoError(t, err)

	assert.Equal(t, bitpress.KindText, restored.Kind)
	assert.Equal(t, original.Table, restored.Table)
	assert.Equal(t, original.Bits.Len(), restored.Bits.Len())
	assert.Equal(t, original.Bits.String(), restored.Bits.String())
	assert.Nil(t, restored.Raster)
}

func TestWriteReadRoundTripImageMetadata(t *testing.T) {
	meta := &bitpress.RasterMeta{Width: 640, Height: 480, Channels: 3, PaddingBits: 5}
	original := buildTestContainer(t, bitpress.KindImage, meta)
	path := writeTestContainer(t, original)

	restored, err := container.Read(path)
	require.NoError(t, err)

	assert.Equal(t, bitpress.KindImage, restored.Kind)
	require.NotNil(t, restored.Raster)
	assert.Equal(t, *meta, *restored.Raster)
}

func TestWriteRejectsMetadataMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.bpk")

	missingMeta := buildTestContainer(t, bitpress.KindImage, nil)
	err := container.Write(path, missingMeta)
	assert.ErrorIs(t, err, bitpress.ErrInvalidArgument)

	strayMeta := buildTestContainer(t, bitpress.KindAudio, &bitpress.RasterMeta{})
	err = container.Write(path, strayMeta)
	assert.ErrorIs(t, err, bitpress.ErrInvalidArgument)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "a failed write must leave no file behind")
}

func TestReadMissingFile(t *testing.T) {
	_, err := container.Read(filepath.Join(t.TempDir(), "nonexistent.bpk"))
	assert.ErrorIs(t, err, bitpress.ErrNotFound)
}

func TestReadRejectsCorruptHeaders(t *testing.T) {
	path := writeTestContainer(t, buildTestContainer(t, bitpress.KindText, nil))

	corruptions := []struct {
		Name   string
		Offset int64
		Value  byte
	}{
		{"bad_magic", 0, 'X'},
		{"unknown_version", 4, 0xEE},
		{"unknown_kind", 5, 0x2A},
	}
	for _, corruption := range corruptions {
		t.Run(
			corruption.Name,
			func(t *testing.T) {
				mutated := bt.CorruptFileAt(t, path, corruption.Offset, corruption.Value)
				_, err := container.Read(mutated)
				assert.ErrorIs(t, err, bitpress.ErrContainerFormat)
			},
		)
	}
}

func TestReadRejectsTruncatedFiles(t *testing.T) {
	path := writeTestContainer(t, buildTestContainer(t, bitpress.KindText, nil))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Chop the file at a few depths: inside the header, inside the table,
	// and inside the payload bits.
	for _, keep := range []int{3, 8, len(raw) - 1} {
		truncated := bt.WriteTempFile(t, "truncated.bpk", raw[:keep])
		_, err := container.Read(truncated)
		assert.ErrorIs(t, err, bitpress.ErrContainerFormat, "kept %d bytes", keep)
	}
}

func TestReadRejectsTrailingGarbage(t *testing.T) {
	path := writeTestContainer(t, buildTestContainer(t, bitpress.KindText, nil))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	bloated := bt.WriteTempFile(t, "bloated.bpk", append(raw, 0xAA))
	_, err = container.Read(bloated)
	assert.ErrorIs(t, err, bitpress.ErrContainerFormat)
}

func TestReadRejectsOutOfRangePadding(t *testing.T) {
	meta := &bitpress.RasterMeta{Width: 2, Height: 2, Channels: 3, PaddingBits: 4}
	path := writeTestContainer(t, buildTestContainer(t, bitpress.KindImage, meta))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// The padding count is the last byte of an image container.
	mutated := bt.CorruptFileAt(t, path, int64(len(raw)-1), 9)
	_, err = container.Read(mutated)
	assert.ErrorIs(t, err, bitpress.ErrContainerFormat)
}

func TestWriteRejectsOversizedCodeword(t *testing.T) {
	longCodeword := make([]byte, 300)
	for i := range longCodeword {
		longCodeword[i] = '0'
	}
	cont := buildTestContainer(t, bitpress.KindText, nil)
	cont.Table['z'] = string(longCodeword)

	err := container.Write(filepath.Join(t.TempDir(), "artifact.bpk"), cont)
	assert.ErrorIs(t, err, bitpress.ErrInvalidArgument)
}
