package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/talentmatch/core"
)

// Key prefixes for different data types
const (
	sourceItemPrefix     = "srcitm"
	chunkPrefix          = "srchnk"
	profileRecordPrefix  = "candpr"
	embeddingFieldPrefix = "candfl"
)

// makeSourceItemKey generates a key for a source item by ID.
func makeSourceItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sourceItemPrefix, id))
}

// makeChunkKey generates a composite key for a chunk.
// Format: prefix:itemID:seq
func makeChunkKey(itemID core.ID, seq int) []byte {
	prefix := chunkPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for itemID + 8 bytes for seq
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches sequence order
	binary.BigEndian.PutUint64(buf[offset:], uint64(itemID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(seq))
	return buf
}

// makePartialChunkKey generates a partial key for scanning an item's chunks.
// Format: prefix:itemID
func makePartialChunkKey(itemID core.ID) []byte {
	prefix := chunkPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for itemID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches sequence order
	binary.BigEndian.PutUint64(buf[offset:], uint64(itemID))
	return buf
}

// makeProfileKey generates a key for a candidate profile by ID.
func makeProfileKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", profileRecordPrefix, id))
}

// makeEmbeddingFieldKey generates a composite key for an embedding field.
// Format: prefix:profileID:name
func makeEmbeddingFieldKey(profileID core.ID, name core.FieldName) []byte {
	prefix := embeddingFieldPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(name)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(profileID))
	offset += 8
	copy(buf[offset:], []byte(name))
	return buf
}

// makePartialEmbeddingFieldKey generates a partial key for scanning a
// profile's embedding fields.
// Format: prefix:profileID
func makePartialEmbeddingFieldKey(profileID core.ID) []byte {
	prefix := embeddingFieldPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(profileID))
	return buf
}
