package persistence

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/confgraph/confgraph/codec"
	"github.com/confgraph/confgraph/model"
)

// Store is the flat record store a snapshot round-trips as a unit.
// Either slice may be empty; both orderings are preserved exactly.
type Store struct {
	Records []*model.GraphRecord
	Packed  []*model.PackedGraphRecord
}

// byteOrder is little-endian throughout, native on x86/ARM.
var byteOrder = binary.LittleEndian

// WriteStore writes st as a snapshot.
//
// Layout:
//  1. FileHeader (magic/version/compression/section count/codec name len)
//  2. codec name bytes
//  3. per section: [type uint16][len uint32][crc32 uint32][framed payload]
//
// The payload of each section is the codec-marshaled record slice framed
// by compressSection.
func WriteStore(w io.Writer, st *Store, c codec.Codec, compression CompressionType) error {
	if w == nil {
		return fmt.Errorf("persistence: writer is nil")
	}
	if st == nil {
		return fmt.Errorf("persistence: store is nil")
	}
	if c == nil {
		c = codec.Default
	}

	type section struct {
		typ     uint16
		payload any
	}
	var sections []section
	if st.Records != nil {
		sections = append(sections, section{SectionRecords, st.Records})
	}
	if st.Packed != nil {
		sections = append(sections, section{SectionPacked, st.Packed})
	}

	name := c.Name()
	header := FileHeader{
		Magic:        MagicNumber,
		Version:      Version,
		Compression:  uint8(compression),
		SectionCount: uint8(len(sections)),
		CodecNameLen: uint16(len(name)),
	}
	if err := binary.Write(w, byteOrder, &header); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}

	for _, s := range sections {
		raw, err := c.Marshal(s.payload)
		if err != nil {
			return fmt.Errorf("persistence: marshal section %d: %w", s.typ, err)
		}
		block, err := compressSection(raw, compression)
		if err != nil {
			return err
		}
		if len(block) >= maxSectionSize {
			return ErrSectionTooLarge
		}
		if err := binary.Write(w, byteOrder, s.typ); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, uint32(len(block))); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, Checksum(block)); err != nil {
			return err
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}

	return nil
}

// ReadStore reads a snapshot written by WriteStore. The codec is
// selected by the name recorded in the header.
func ReadStore(r io.Reader) (*Store, error) {
	var header FileHeader
	if err := binary.Read(r, byteOrder, &header); err != nil {
		return nil, err
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%04x", ErrInvalidVersion, header.Version)
	}

	nameBytes := make([]byte, header.CodecNameLen)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return nil, err
	}
	c, ok := codec.ByName(string(nameBytes))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, nameBytes)
	}
	compression := CompressionType(header.Compression)

	st := &Store{}
	for i := 0; i < int(header.SectionCount); i++ {
		var typ uint16
		if err := binary.Read(r, byteOrder, &typ); err != nil {
			return nil, err
		}
		var blockLen uint32
		if err := binary.Read(r, byteOrder, &blockLen); err != nil {
			return nil, err
		}
		var crc uint32
		if err := binary.Read(r, byteOrder, &crc); err != nil {
			return nil, err
		}

		block := make([]byte, blockLen)
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, err
		}
		if Checksum(block) != crc {
			return nil, fmt.Errorf("%w: section %d", ErrChecksumFailed, typ)
		}

		raw, err := decompressSection(block, compression)
		if err != nil {
			return nil, err
		}

		switch typ {
		case SectionRecords:
			if err := c.Unmarshal(raw, &st.Records); err != nil {
				return nil, fmt.Errorf("persistence: unmarshal records: %w", err)
			}
		case SectionPacked:
			if err := c.Unmarshal(raw, &st.Packed); err != nil {
				return nil, fmt.Errorf("persistence: unmarshal packed records: %w", err)
			}
		default:
			return nil, fmt.Errorf("%w: %d", ErrInvalidSection, typ)
		}
	}

	return st, nil
}
