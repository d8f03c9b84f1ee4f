// SPDX-License-Identifier: MIT

package codec

import "errors"

var (
	// ErrBadHeader indicates input that does not start with a codec header.
	ErrBadHeader = errors.New("codec: not a matrix file")

	// ErrUnknownCompression indicates a CompressionType outside none/lz4/zstd.
	ErrUnknownCompression = errors.New("codec: unknown compression")

	// ErrUnsupportedMatrix indicates a storage family the codec cannot write,
	// or a file naming one it cannot read.
	ErrUnsupportedMatrix = errors.New("codec: unsupported matrix storage")
)
