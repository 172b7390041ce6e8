// Package press wires the media adapters, the coding core, and the container
// layer into the two file-level operations callers actually run: compress a
// medium into a container, and reconstruct a medium from one.
//
// Both operations are synchronous and run to completion; each call owns its
// own tree, table, and bit buffer, so calls on different files can run
// concurrently. Two calls targeting the same path get no ordering guarantee
// from this package.
package press

import (
	"fmt"
	"os"
	"strings"

	"github.com/rmarchant/bitpress"
	"github.com/rmarchant/bitpress/adapters"
	"github.com/rmarchant/bitpress/container"
	"github.com/rmarchant/bitpress/prefixcode"
)

// ContainerExtension is appended to the source path to name the compressed
// artifact.
const ContainerExtension = ".bpk"

// Compress reads the medium at sourcePath, projects it onto symbols with the
// adapter for the given kind, builds a code tree and table from that one
// static frequency snapshot, encodes, and writes the container next to the
// source. It returns the container's path.
//
// Nothing is written unless every step succeeds; a failed compress leaves no
// partial container behind.
func Compress(sourcePath string, kind bitpress.MediaKind) (string, error) {
	adapter, err := adapters.ForKind(kind)
	if err != nil {
		return "", err
	}

	media, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", bitpress.ErrNotFound.Wrap(err)
		}
		return "", bitpress.ErrInvalidArgument.Wrap(err)
	}

	symbols, meta, err := adapter.ToSymbols(media)
	if err != nil {
		return "", err
	}

	root, err := prefixcode.Build(symbols)
	if err != nil {
		return "", err
	}
	table := prefixcode.Derive(root)

	bits, err := prefixcode.Encode(symbols, table)
	if err != nil {
		return "", err
	}

	containerPath := sourcePath + ContainerExtension
	cont := &container.Container{Kind: kind, Table: table, Bits: bits, Raster: meta}
	if err := container.Write(containerPath, cont); err != nil {
		return "", err
	}
	return containerPath, nil
}

// Decompress reads the container at containerPath in full, decodes the bit
// stream with the stored table, hands the symbols back to the adapter for the
// given kind, and writes the reconstructed medium beside the container. It
// returns the reconstructed file's path.
func Decompress(containerPath string, kind bitpress.MediaKind) (string, error) {
	adapter, err := adapters.ForKind(kind)
	if err != nil {
		return "", err
	}

	cont, err := container.Read(containerPath)
	if err != nil {
		return "", err
	}
	if cont.Kind != kind {
		return "", bitpress.ErrContainerFormat.WithMessage(fmt.Sprintf(
			"container holds %s but %s was requested", cont.Kind, kind))
	}

	symbols, err := prefixcode.Decode(cont.Bits, cont.Table)
	if err != nil {
		return "", err
	}

	media, err := adapter.FromSymbols(symbols, cont.Raster)
	if err != nil {
		return "", err
	}

	outputPath := restoredPath(containerPath, adapter.OutputExtension())
	if err := os.WriteFile(outputPath, media, 0o644); err != nil {
		return "", bitpress.ErrInvalidArgument.Wrap(err)
	}
	return outputPath, nil
}

// restoredPath names the reconstructed medium: the container path minus the
// container extension and the medium's own extension, with "_restored" and
// the medium extension appended. "song.wav.bpk" becomes "song_restored.wav".
func restoredPath(containerPath, mediaExtension string) string {
	base := strings.TrimSuffix(containerPath, ContainerExtension)
	base = strings.TrimSuffix(base, mediaExtension)
	return base + "_restored" + mediaExtension
}
