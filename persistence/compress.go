package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType selects the section compression algorithm.
type CompressionType uint8

const (
	// CompressionNone stores sections uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fastest).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// blockHeaderSize frames each section payload:
// [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means the data is stored uncompressed.
const blockHeaderSize = 8

// compressSection frames and optionally compresses a section payload.
// Incompressible data (ratio above 0.9) is stored raw.
func compressSection(data []byte, compression CompressionType) ([]byte, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("persistence: unsupported compression type %d", compression)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	bound := lz4.CompressBlockBound(len(data))
	compressed := make([]byte, bound)
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

// decompressSection reverses compressSection.
func decompressSection(block []byte, compression CompressionType) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, errors.New("persistence: section block too short")
	}
	uncompressedSize := binary.LittleEndian.Uint32(block[0:])
	compressedSize := binary.LittleEndian.Uint32(block[4:])
	payload := block[blockHeaderSize:]

	if compressedSize == 0 {
		if uint32(len(payload)) != uncompressedSize {
			return nil, errors.New("persistence: raw section size mismatch")
		}
		return payload, nil
	}
	if uint32(len(payload)) != compressedSize {
		return nil, errors.New("persistence: compressed section size mismatch")
	}

	switch compression {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		return out[:n], nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		return out, err
	default:
		return nil, fmt.Errorf("persistence: compressed block with compression type %d", compression)
	}
}
