package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// maxRenderedValue caps the number of value bytes shown by Spec.String.
const maxRenderedValue = 32

// Spec is a finished task specification. It wraps one contiguous buffer that
// holds no absolute addresses, so the bytes returned by Bytes can be copied to
// another process and read back with ParseSpec without decoding.
//
// A Spec is never mutated after Finish and is safe for concurrent reads.
type Spec struct {
	buf []byte
}

// ParseSpec returns a Spec that reads directly from buf. The buffer is not
// copied; the caller must not modify it while the Spec is in use.
func ParseSpec(buf []byte) (*Spec, error) {
	size := int64(len(buf))
	if size < SpecHeaderSize {
		return nil, zerr.With(ErrMalformedSpec, "size", size)
	}

	numArgs := getInt64(buf, offNumArgs)
	numReturns := getInt64(buf, offNumReturns)
	valueSize := getInt64(buf, offArgsValueSize)
	if numArgs < 0 || numReturns < 0 || valueSize < 0 || numArgs > size || numReturns > size || valueSize > size {
		return nil, zerr.With(ErrMalformedSpec, "reason", "invalid counts")
	}
	if want := specSize(numArgs, numReturns, valueSize); want != size {
		err := zerr.With(ErrMalformedSpec, "size", size)
		return nil, zerr.With(err, "expected_size", want)
	}
	if getInt64(buf, offArgsFilled) != numArgs || getInt64(buf, offArgsValueFilled) != valueSize {
		return nil, zerr.With(ErrMalformedSpec, "reason", "unfinished spec")
	}

	valueStart := valueRegionOffset(numArgs)
	valueEnd := valueStart + valueSize
	for i := range numArgs {
		off := argDescriptorOffset(i)
		kind := ArgKind(getUint32(buf, off+argOffKind))
		if !kind.valid() {
			err := zerr.With(ErrMalformedSpec, "arg_index", i)
			return nil, zerr.With(err, "kind", uint32(kind))
		}
		if kind != ArgByVal {
			continue
		}
		vOff := getInt64(buf, off+argOffValueOff)
		vLen := getInt64(buf, off+argOffValueLen)
		if vLen < 0 || vOff < valueStart || vOff > valueEnd || vLen > valueEnd-vOff {
			err := zerr.With(ErrMalformedSpec, "arg_index", i)
			return nil, zerr.With(err, "reason", "value out of bounds")
		}
	}

	return &Spec{buf: buf}, nil
}

// Bytes returns the encoded spec. The slice aliases the spec and must not be modified.
func (s *Spec) Bytes() []byte {
	return s.buf
}

// MarshalBinary implements encoding.BinaryMarshaler and returns a copy of the encoded spec.
func (s *Spec) MarshalBinary() ([]byte, error) {
	return s.Clone().buf, nil
}

// Clone returns a spec backed by a private copy of the buffer.
func (s *Spec) Clone() *Spec {
	buf := make([]byte, len(s.buf))
	copy(buf, s.buf)
	return &Spec{buf: buf}
}

// Size returns the encoded size in bytes.
func (s *Spec) Size() int64 {
	return int64(len(s.buf))
}

// TaskID returns the content-derived task identifier.
func (s *Spec) TaskID() TaskID {
	return TaskID(getID(s.buf, offTaskID))
}

// ParentTaskID returns the identifier of the task that submitted this one.
func (s *Spec) ParentTaskID() TaskID {
	return TaskID(getID(s.buf, offParentTaskID))
}

// ParentCounter returns how many tasks the parent submitted before this one.
func (s *Spec) ParentCounter() int64 {
	return getInt64(s.buf, offParentCounter)
}

// FunctionID returns the identifier of the function to execute.
func (s *Spec) FunctionID() FunctionID {
	return FunctionID(getID(s.buf, offFunctionID))
}

// NumArgs returns the number of arguments.
func (s *Spec) NumArgs() int64 {
	return getInt64(s.buf, offNumArgs)
}

// NumReturns returns the number of return values.
func (s *Spec) NumReturns() int64 {
	return getInt64(s.buf, offNumReturns)
}

// ArgsValueSize returns the total size of all by-value payloads.
func (s *Spec) ArgsValueSize() int64 {
	return getInt64(s.buf, offArgsValueSize)
}

// ArgKind returns whether argument i is passed by reference or by value.
func (s *Spec) ArgKind(i int64) (ArgKind, error) {
	off, err := s.argOffset(i)
	if err != nil {
		return 0, err
	}
	return ArgKind(getUint32(s.buf, off+argOffKind)), nil
}

// ArgID returns the object id of by-reference argument i.
func (s *Spec) ArgID(i int64) (ObjectID, error) {
	off, err := s.argOffsetOfKind(i, ArgByRef)
	if err != nil {
		return ObjectID{}, err
	}
	return ObjectID(getID(s.buf, off+argOffPayload)), nil
}

// ArgValue returns the bytes of by-value argument i. The slice aliases the
// spec and must not be modified.
func (s *Spec) ArgValue(i int64) ([]byte, error) {
	off, err := s.argOffsetOfKind(i, ArgByVal)
	if err != nil {
		return nil, err
	}
	vOff := getInt64(s.buf, off+argOffValueOff)
	vLen := getInt64(s.buf, off+argOffValueLen)
	return s.buf[vOff : vOff+vLen : vOff+vLen], nil
}

// ArgLength returns the length in bytes of by-value argument i.
func (s *Spec) ArgLength(i int64) (int64, error) {
	off, err := s.argOffsetOfKind(i, ArgByVal)
	if err != nil {
		return 0, err
	}
	return getInt64(s.buf, off+argOffValueLen), nil
}

// Return returns the object id of return value i.
func (s *Spec) Return(i int64) (ObjectID, error) {
	n := s.NumReturns()
	if i < 0 || i >= n {
		err := zerr.With(ErrIndexOutOfRange, "return_index", i)
		return ObjectID{}, zerr.With(err, "num_returns", n)
	}
	off := returnTableOffset(s.NumArgs(), s.ArgsValueSize()) + i*IDSize
	return ObjectID(getID(s.buf, off)), nil
}

// Returns returns all return object ids in order.
func (s *Spec) Returns() []ObjectID {
	n := s.NumReturns()
	ids := make([]ObjectID, n)
	base := returnTableOffset(s.NumArgs(), s.ArgsValueSize())
	for i := range n {
		ids[i] = ObjectID(getID(s.buf, base+i*IDSize))
	}
	return ids
}

// Recompute hashes the spec contents again and returns the resulting task id.
func (s *Spec) Recompute() TaskID {
	return s.computeTaskID()
}

// VerifyID reports whether the spec's contents hash to expected and the
// stored task id and return ids agree with it. A mismatch is an ordinary
// result, not an error.
func (s *Spec) VerifyID(expected TaskID) bool {
	if !s.TaskID().Equal(expected) || !s.computeTaskID().Equal(expected) {
		return false
	}
	for i, id := range s.Returns() {
		if !id.Equal(ComputeReturnID(expected, int64(i))) {
			return false
		}
	}
	return true
}

// String renders the spec for diagnostics.
func (s *Spec) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "task %s\n", s.TaskID())
	fmt.Fprintf(&b, "  parent:   %s #%d\n", s.ParentTaskID(), s.ParentCounter())
	fmt.Fprintf(&b, "  function: %s\n", s.FunctionID())
	fmt.Fprintf(&b, "  args:     %d\n", s.NumArgs())
	for i := range s.NumArgs() {
		kind, _ := s.ArgKind(i)
		switch kind {
		case ArgByRef:
			id, _ := s.ArgID(i)
			fmt.Fprintf(&b, "    [%d] ref %s\n", i, id)
		case ArgByVal:
			val, _ := s.ArgValue(i)
			fmt.Fprintf(&b, "    [%d] val %d bytes %s\n", i, len(val), renderValue(val))
		}
	}
	fmt.Fprintf(&b, "  returns:  %d\n", s.NumReturns())
	for i, id := range s.Returns() {
		fmt.Fprintf(&b, "    [%d] %s\n", i, id)
	}
	return b.String()
}

func renderValue(val []byte) string {
	if len(val) > maxRenderedValue {
		return hex.EncodeToString(val[:maxRenderedValue]) + "..."
	}
	return hex.EncodeToString(val)
}

func (s *Spec) argOffset(i int64) (int64, error) {
	n := s.NumArgs()
	if i < 0 || i >= n {
		err := zerr.With(ErrIndexOutOfRange, "arg_index", i)
		return 0, zerr.With(err, "num_args", n)
	}
	return argDescriptorOffset(i), nil
}

func (s *Spec) argOffsetOfKind(i int64, want ArgKind) (int64, error) {
	off, err := s.argOffset(i)
	if err != nil {
		return 0, err
	}
	if got := ArgKind(getUint32(s.buf, off+argOffKind)); got != want {
		err := zerr.With(ErrWrongArgKind, "arg_index", i)
		err = zerr.With(err, "kind", got.String())
		return 0, zerr.With(err, "requested", want.String())
	}
	return off, nil
}

// computeTaskID hashes the parent id, parent counter, function id and every
// argument in order. The task id field itself is not part of the input.
func (s *Spec) computeTaskID() TaskID {
	d := NewDigest()
	d.WriteID(getID(s.buf, offParentTaskID))
	d.WriteInt64(s.ParentCounter())
	d.WriteID(getID(s.buf, offFunctionID))

	numArgs := s.NumArgs()
	d.WriteInt64(numArgs)
	for i := range numArgs {
		off := argDescriptorOffset(i)
		kind := ArgKind(getUint32(s.buf, off+argOffKind))
		_ = d.WriteByte(byte(kind))
		if kind == ArgByRef {
			d.WriteID(getID(s.buf, off+argOffPayload))
			continue
		}
		vOff := getInt64(s.buf, off+argOffValueOff)
		vLen := getInt64(s.buf, off+argOffValueLen)
		d.WriteBytes(s.buf[vOff : vOff+vLen])
	}
	return TaskID(d.Sum())
}
