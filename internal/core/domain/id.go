// Package domain contains the task representation: identifiers, the packed task
// specification and its builder, task instances and task updates.
package domain

import (
	"encoding/hex"

	"go.trai.ch/zerr"
)

// IDSize is the width in bytes of every identifier.
const IDSize = 20

// UniqueID is the raw representation shared by all identifier roles.
type UniqueID [IDSize]byte

type (
	functionRole struct{}
	taskRole     struct{}
	objectRole   struct{}
	nodeRole     struct{}
	instanceRole struct{}
)

// ID is a fixed-width identifier tagged with a role. Identifiers of different
// roles share the same storage but are distinct types, so converting between
// them must be explicit.
type ID[R any] UniqueID

type (
	// FunctionID identifies a function to execute.
	FunctionID = ID[functionRole]
	// TaskID is the content hash of a task specification.
	TaskID = ID[taskRole]
	// ObjectID identifies an argument or return value.
	ObjectID = ID[objectRole]
	// NodeID identifies the node a task instance is assigned to.
	NodeID = ID[nodeRole]
	// InstanceID identifies one execution attempt of a task. It is generated, not hashed.
	InstanceID = ID[instanceRole]
)

// Equal reports whether two identifiers of the same role are byte-wise equal.
func (id ID[R]) Equal(other ID[R]) bool {
	return id == other
}

// IsNil reports whether the identifier is all zero bytes.
func (id ID[R]) IsNil() bool {
	return id == ID[R]{}
}

// Bytes returns a copy of the identifier bytes.
func (id ID[R]) Bytes() []byte {
	b := make([]byte, IDSize)
	copy(b, id[:])
	return b
}

// String returns the lower-case hex encoding.
func (id ID[R]) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first eight hex characters, used in diagnostics.
func (id ID[R]) Short() string {
	return hex.EncodeToString(id[:4])
}

// MarshalText implements encoding.TextMarshaler.
func (id ID[R]) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID[R]) UnmarshalText(text []byte) error {
	parsed, err := ParseID[ID[R]](string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID decodes a hex-encoded identifier of any role, e.g. ParseID[TaskID](s).
func ParseID[T ~[IDSize]byte](s string) (T, error) {
	var id T
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, zerr.With(zerr.Wrap(err, "invalid identifier"), "id", s)
	}
	if len(raw) != IDSize {
		return id, zerr.With(zerr.With(ErrInvalidID, "id", s), "length", len(raw))
	}
	copy(id[:], raw)
	return id, nil
}
