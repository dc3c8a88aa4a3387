package domain

import (
	"encoding/binary"
	"hash"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Digest combines an ordered sequence of byte ranges into one identifier.
// Variable-length ranges are length-prefixed so that adjacent ranges cannot
// be re-split into a colliding input.
type Digest struct {
	h hash.Hash
}

// NewDigest returns an empty Digest.
func NewDigest() *Digest {
	// blake2b.New only fails for sizes outside 1..64 or keys over 64 bytes.
	h, err := blake2b.New(IDSize, nil)
	if err != nil {
		panic(err)
	}
	return &Digest{h: h}
}

// WriteID writes a fixed-width identifier.
func (d *Digest) WriteID(id UniqueID) {
	_, _ = d.h.Write(id[:])
}

// WriteInt64 writes v as eight little-endian bytes.
func (d *Digest) WriteInt64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	_, _ = d.h.Write(b[:])
}

// WriteByte writes a single tag byte.
func (d *Digest) WriteByte(c byte) error {
	_, _ = d.h.Write([]byte{c})
	return nil
}

// WriteBytes writes the length of b followed by b.
func (d *Digest) WriteBytes(b []byte) {
	d.WriteInt64(int64(len(b)))
	_, _ = d.h.Write(b)
}

// Sum returns the identifier for everything written so far.
func (d *Digest) Sum() UniqueID {
	var id UniqueID
	copy(id[:], d.h.Sum(nil))
	return id
}

// HashID hashes the given byte ranges, in order, into a raw identifier.
// Convert the result to the role it is used for, e.g. ObjectID(HashID(b)).
func HashID(parts ...[]byte) UniqueID {
	d := NewDigest()
	for _, p := range parts {
		d.WriteBytes(p)
	}
	return d.Sum()
}

// FunctionIDFromName derives a function identifier from a qualified function name.
func FunctionIDFromName(name string) FunctionID {
	return FunctionID(HashID([]byte("function"), []byte(name)))
}

// ComputeReturnID derives the object identifier of return value index of a task.
func ComputeReturnID(taskID TaskID, index int64) ObjectID {
	d := NewDigest()
	d.WriteID(UniqueID(taskID))
	d.WriteInt64(index)
	return ObjectID(d.Sum())
}

// NewInstanceID returns a fresh random task instance identifier.
func NewInstanceID() InstanceID {
	u := uuid.New()
	d := NewDigest()
	_ = d.WriteByte('i')
	d.WriteBytes(u[:])
	return InstanceID(d.Sum())
}
