// Package persistence implements the binary snapshot format for record
// stores.
//
// A snapshot is a single self-describing blob: a fixed header naming the
// codec and compression, followed by CRC32-guarded sections holding the
// codec-marshaled record slices. It round-trips every record field
// exactly, including the canonical edge ordering.
package persistence

import "errors"

const (
	// MagicNumber identifies Confgraph snapshot files (ASCII: "CGR1").
	MagicNumber = 0x43475231
	// Version is the current file format version.
	Version = 0x0001

	// Section types.
	SectionRecords = uint16(1)
	SectionPacked  = uint16(2)
)

var (
	ErrInvalidMagic    = errors.New("persistence: invalid magic number")
	ErrInvalidVersion  = errors.New("persistence: unsupported version")
	ErrInvalidSection  = errors.New("persistence: invalid section type")
	ErrChecksumFailed  = errors.New("persistence: section checksum mismatch")
	ErrUnknownCodec    = errors.New("persistence: unknown codec name")
	ErrSectionTooLarge = errors.New("persistence: section exceeds size limit")
)

// maxSectionSize caps a single section at 4 GiB; a larger value in the
// framing indicates corruption.
const maxSectionSize = 1 << 32

// FileHeader is the fixed-size header at the start of every snapshot.
type FileHeader struct {
	Magic        uint32
	Version      uint16
	Compression  uint8
	SectionCount uint8
	CodecNameLen uint16
	Reserved     [6]byte
}
