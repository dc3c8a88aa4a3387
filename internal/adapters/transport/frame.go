// Package transport moves finished task specs between processes.
package transport

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/zerr"
)

// TrailerSize is the length of the checksum appended to framed specs.
const TrailerSize = 8

// Frame returns the spec bytes followed by their xxhash64 checksum.
func Frame(spec *domain.Spec) []byte {
	raw := spec.Bytes()
	out := make([]byte, len(raw)+TrailerSize)
	copy(out, raw)
	binary.LittleEndian.PutUint64(out[len(raw):], xxhash.Sum64(raw))
	return out
}

// Unframe verifies the checksum and returns a spec aliasing the payload.
func Unframe(payload []byte) (*domain.Spec, error) {
	if len(payload) < TrailerSize {
		return nil, zerr.With(domain.ErrMalformedSpec, "payload_size", len(payload))
	}

	n := len(payload) - TrailerSize
	body := payload[:n:n]
	want := binary.LittleEndian.Uint64(payload[n:])
	if got := xxhash.Sum64(body); got != want {
		return nil, zerr.With(zerr.With(domain.ErrChecksumMismatch, "want", want), "got", got)
	}

	return domain.ParseSpec(body)
}
