// Package cache provides a persistent digest cache for the duplicate
// engine. Fingerprints are keyed by absolute path and validated against
// file size and modification time, so unchanged files skip re-hashing on
// repeat runs.
package cache

import (
	"bytes"
	"encoding/gob"

	"github.com/jamesainslie/fsclean/pkg/fsclean/fingerprint"
)

// CachedDigest is a stored fingerprint with the metadata used to decide
// whether it is still valid.
type CachedDigest struct {
	Size   int64
	Mtime  int64 // UnixNano
	Digest fingerprint.Digest
}

// Encode serializes the entry using gob.
func (e *CachedDigest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes bytes into the entry using gob.
func (e *CachedDigest) Decode(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(e)
}
