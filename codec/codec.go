// SPDX-License-Identifier: MIT

// Package codec stores matrix.Matrix values as compressed files.
//
// Layout:
//
//	[magic "MILO"][version uint8][compression uint8][payload...]
//
// The payload is one JSON document describing the storage family (dense,
// csc, sym, diag), the shape, the axis names and the raw arrays, compressed
// with the algorithm named in the header. Readers pick the decompressor from
// the header, so files written with any CompressionType read back the same way.
package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/katalvlaran/milo/matrix"
)

// CompressionType identifies the payload compression.
type CompressionType uint8

const (
	// CompressionNone stores the JSON payload as is.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 frames (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses zstd frames (smaller). This is the default.
	CompressionZSTD CompressionType = 2
)

// String names the compression.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	}

	return fmt.Sprintf("CompressionType(%d)", uint8(c))
}

// ParseCompression maps "none", "lz4" and "zstd" to a CompressionType.
func ParseCompression(s string) (CompressionType, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "":
		return CompressionZSTD, nil
	}

	return 0, fmt.Errorf("ParseCompression(%q): %w", s, ErrUnknownCompression)
}

const (
	formatVersion = 1
	headerSize    = 6
)

var magic = [4]byte{'M', 'I', 'L', 'O'}

// Option configures WriteMatrix.
type Option func(*options)

type options struct {
	compression CompressionType
	zstdLevel   zstd.EncoderLevel
}

// WithCompression selects the payload compression (default CompressionZSTD).
func WithCompression(c CompressionType) Option {
	return func(o *options) { o.compression = c }
}

// WithZstdLevel selects the zstd encoder level (default zstd.SpeedDefault).
func WithZstdLevel(l zstd.EncoderLevel) Option {
	return func(o *options) { o.zstdLevel = l }
}

// WriteMatrix encodes m to w.
//
// Errors:
//   - ErrUnsupportedMatrix for storages outside Dense/CSC/SymCSC/Diagonal.
//   - ErrUnknownCompression for an invalid CompressionType.
//   - I/O and compressor errors, wrapped.
func WriteMatrix(w io.Writer, m matrix.Matrix, opts ...Option) error {
	o := options{compression: CompressionZSTD, zstdLevel: zstd.SpeedDefault}
	for _, opt := range opts {
		opt(&o)
	}
	if o.compression > CompressionZSTD {
		return fmt.Errorf("WriteMatrix: %s: %w", o.compression, ErrUnknownCompression)
	}
	env, err := toEnvelope(m)
	if err != nil {
		return err
	}

	hdr := []byte{magic[0], magic[1], magic[2], magic[3], formatVersion, byte(o.compression)}
	if _, err = w.Write(hdr); err != nil {
		return fmt.Errorf("WriteMatrix: header: %w", err)
	}

	var body io.WriteCloser
	switch o.compression {
	case CompressionNone:
		body = nopWriteCloser{w}
	case CompressionLZ4:
		body = lz4.NewWriter(w)
	default:
		if body, err = zstd.NewWriter(w, zstd.WithEncoderLevel(o.zstdLevel)); err != nil {
			return fmt.Errorf("WriteMatrix: zstd: %w", err)
		}
	}
	if err = gojson.NewEncoder(body).Encode(env); err != nil {
		_ = body.Close()

		return fmt.Errorf("WriteMatrix: encode: %w", err)
	}
	if err = body.Close(); err != nil {
		return fmt.Errorf("WriteMatrix: flush: %w", err)
	}

	return nil
}

// ReadMatrix decodes a matrix written by WriteMatrix.
//
// Errors:
//   - ErrBadHeader for a missing or foreign header, or an unknown version.
//   - ErrUnknownCompression, ErrUnsupportedMatrix.
//   - matrix package errors when the stored arrays are inconsistent.
func ReadMatrix(r io.Reader) (matrix.Matrix, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("ReadMatrix: %w", ErrBadHeader)
	}
	if !bytes.Equal(hdr[:4], magic[:]) || hdr[4] != formatVersion {
		return nil, fmt.Errorf("ReadMatrix: %w", ErrBadHeader)
	}

	var body io.Reader
	switch c := CompressionType(hdr[5]); c {
	case CompressionNone:
		body = r
	case CompressionLZ4:
		body = lz4.NewReader(r)
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("ReadMatrix: zstd: %w", err)
		}
		defer dec.Close()
		body = dec
	default:
		return nil, fmt.Errorf("ReadMatrix: %s: %w", c, ErrUnknownCompression)
	}

	var env envelope
	if err := gojson.NewDecoder(body).Decode(&env); err != nil {
		return nil, fmt.Errorf("ReadMatrix: decode: %w", err)
	}

	return env.toMatrix()
}

// SaveFile writes m to path, replacing any existing file.
func SaveFile(path string, m matrix.Matrix, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err = WriteMatrix(bw, m, opts...); err != nil {
		_ = f.Close()

		return err
	}
	if err = bw.Flush(); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// LoadFile reads a matrix from path.
func LoadFile(path string) (matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadMatrix(bufio.NewReader(f))
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
