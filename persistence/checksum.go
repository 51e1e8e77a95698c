package persistence

import "hash/crc32"

// Section integrity uses CRC32 (IEEE polynomial): fast, hardware
// accelerated, good at catching storage corruption. It is not
// cryptographic and does not detect tampering.

// Checksum computes the CRC32 checksum of data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
