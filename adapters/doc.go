// Package adapters holds the media handlers that sit between raw files and
// the coding core. Each adapter reinterprets one medium's bytes as a symbol
// sequence and back; none of them know anything about code trees, tables, or
// the container layout.
//
// The image adapter is the only one with real structure: it flattens the
// raster's pixel bytes into a bit stream, zero-pads that stream up to a
// multiple of seven, and reads it back out in 7-bit groups, each group
// becoming one symbol. Seven bits keeps every symbol inside the 7-bit code
// point range, which keeps raster alphabets small (at most 128 symbols). The
// pad count travels in the container's raster metadata so decompression can
// strip exactly those bits again.
//
// Audio and video adapters map one byte to one symbol and rely on their
// formats' own headers (which are part of the payload and round-trip with
// it) for structure.
package adapters
