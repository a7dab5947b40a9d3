package hashmap

import (
	"hash/crc32"
)

// StringHash - The internal hash algorithm for string keys, implemented
// using crc32.ChecksumIEEE over the key bytes. It is deterministic across
// processes, which keeps bucket layouts reproducible between runs.
func StringHash(key string) uint64 {
	return uint64(crc32.ChecksumIEEE([]byte(key)))
}

// BytesHash - The internal hash algorithm for byte slice keys, implemented
// using crc32.ChecksumIEEE.
func BytesHash(key []byte) uint64 {
	return uint64(crc32.ChecksumIEEE(key))
}
