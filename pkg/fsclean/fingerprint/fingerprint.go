// Package fingerprint computes content fingerprints for duplicate
// detection. Two files are duplicates iff their fingerprints are equal.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// DigestSize is the length of a content digest in bytes.
const DigestSize = sha256.Size

// chunkSize bounds the read buffer so peak memory stays constant
// regardless of file size.
const chunkSize = 64 * 1024

// Digest is a fixed-size SHA-256 content digest.
type Digest [DigestSize]byte

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Record is the fingerprint of one file: its content digest and byte
// size. Computed once, never mutated.
type Record struct {
	Digest Digest
	Size   int64
}

// File streams the file at path through SHA-256 in bounded chunks and
// returns its fingerprint. An unreadable file yields an error; a
// zero-byte file yields a valid zero-length record.
func File(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)

	size, err := io.CopyBuffer(h, f, buf)
	if err != nil {
		return Record{}, fmt.Errorf("cannot read %q: %w", path, err)
	}

	var rec Record
	rec.Size = size
	copy(rec.Digest[:], h.Sum(nil))
	return rec, nil
}
