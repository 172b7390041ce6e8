// Package testing holds fixture helpers shared by the package tests. Nothing
// here is part of the public API.
package testing

import (
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmarchant/bitpress"
	"github.com/rmarchant/bitpress/adapters"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// CreateRandomPixels returns a raster's worth of random pixel bytes. It
// either returns a valid slice or fails the test and aborts.
func CreateRandomPixels(width, height, channels uint, t *testing.T) []byte {
	pixels := make([]byte, width*height*channels)

	_, err := rand.Read(pixels)
	require.NoErrorf(
		t,
		err,
		"failed to fill a %dx%dx%d raster with random bytes",
		width,
		height,
		channels,
	)
	return pixels
}

// CreateBMPFixture builds a well-formed 24-bit bitmap file from random pixel
// data and returns its bytes.
func CreateBMPFixture(width, height uint, t *testing.T) []byte {
	pixels := CreateRandomPixels(width, height, 3, t)
	meta := &bitpress.RasterMeta{
		Width:    uint32(width),
		Height:   uint32(height),
		Channels: 3,
	}
	media, err := adapters.BuildBMP(meta, pixels)
	require.NoError(t, err, "failed to assemble the BMP fixture")
	return media
}

// WriteTempFile drops content into a fresh file under the test's temp
// directory and returns its path.
func WriteTempFile(t *testing.T, name string, content []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// FileAsStream loads a file fully into memory and returns a seekable
// read/write view of it, for tests that flip bytes at known offsets before
// writing the mutated copy back out.
func FileAsStream(t *testing.T, path string) io.ReadWriteSeeker {
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 0, "fixture file is empty")
	return bytesextra.NewReadWriteSeeker(raw)
}

// CorruptFileAt rewrites one byte of the file through a seekable stream and
// returns the path of the mutated copy, leaving the original untouched.
func CorruptFileAt(t *testing.T, path string, offset int64, value byte) string {
	stream := FileAsStream(t, path)

	_, err := stream.Seek(offset, io.SeekStart)
	require.NoError(t, err)
	_, err = stream.Write([]byte{value})
	require.NoError(t, err)

	_, err = stream.Seek(0, io.SeekStart)
	require.NoError(t, err)
	mutated, err := io.ReadAll(stream)
	require.NoError(t, err)

	return WriteTempFile(t, "corrupted-"+filepath.Base(path), mutated)
}
