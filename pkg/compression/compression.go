// Package compression provides transparent streaming decompression for
// input files: the loader never needs to know whether a .mtx file arrived
// plain, gzipped, or zstd-compressed.
package compression

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Type identifies a detected compression format.
type Type uint8

const (
	// TypeNone means the stream is not compressed.
	TypeNone Type = iota
	// TypeGzip means the stream is gzip-compressed.
	TypeGzip
	// TypeZstd means the stream is zstd-compressed.
	TypeZstd
)

// String returns the human-readable name of the type.
func (t Type) String() string {
	switch t {
	case TypeGzip:
		return "gzip"
	case TypeZstd:
		return "zstd"
	default:
		return "none"
	}
}

var (
	gzipMagic = [2]byte{0x1f, 0x8b}
	zstdMagic = [4]byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectType peeks at the first bytes of br (without consuming them) and
// returns the compression format they indicate.
func DetectType(br *bufio.Reader) (Type, error) {
	prefix, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return TypeNone, fmt.Errorf("peek input: %w", err)
	}
	if len(prefix) >= 4 && prefix[0] == zstdMagic[0] && prefix[1] == zstdMagic[1] && prefix[2] == zstdMagic[2] && prefix[3] == zstdMagic[3] {
		return TypeZstd, nil
	}
	if len(prefix) >= 2 && prefix[0] == gzipMagic[0] && prefix[1] == gzipMagic[1] {
		return TypeGzip, nil
	}
	return TypeNone, nil
}

// decoder wraps a zstd.Decoder so it satisfies io.ReadCloser (the stdlib
// gzip.Reader already does).
type decoder struct {
	*zstd.Decoder
}

func (d *decoder) Close() error {
	d.Decoder.Close()
	return nil
}

// NewReader wraps r in a transparently-decompressing io.ReadCloser,
// auto-detecting gzip, zstd, or plain input from its leading bytes. The
// caller must Close the returned reader when done.
func NewReader(r io.Reader) (io.ReadCloser, Type, error) {
	br := bufio.NewReader(r)
	typ, err := DetectType(br)
	if err != nil {
		return nil, TypeNone, err
	}

	switch typ {
	case TypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, TypeNone, fmt.Errorf("open gzip stream: %w", err)
		}
		return gz, TypeGzip, nil
	case TypeZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, TypeNone, fmt.Errorf("open zstd stream: %w", err)
		}
		return &decoder{zr}, TypeZstd, nil
	default:
		return io.NopCloser(br), TypeNone, nil
	}
}
