package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

const (
	offInstanceID    = 0
	offInstanceState = offInstanceID + IDSize
	offInstanceNode  = offInstanceState + 4

	// InstanceHeaderSize is the size of the fields preceding the embedded spec.
	InstanceHeaderSize = offInstanceNode + IDSize
)

// Instance is one execution attempt of a task spec: an instance id, a
// scheduling state, an assigned node and an owned copy of the spec, packed in
// a single buffer so the whole record can be stored or shipped as-is.
//
// State and node are mutable and not synchronised; callers sharing an
// Instance across goroutines must serialise access themselves.
type Instance struct {
	buf  []byte
	spec *Spec
}

// NewInstance creates an instance holding a copy of spec.
func NewInstance(id InstanceID, spec *Spec, state SchedulingState, node NodeID) *Instance {
	buf := make([]byte, InstanceHeaderSize+len(spec.buf))
	putID(buf, offInstanceID, UniqueID(id))
	putUint32(buf, offInstanceState, uint32(state))
	putID(buf, offInstanceNode, UniqueID(node))
	copy(buf[InstanceHeaderSize:], spec.buf)

	return &Instance{
		buf:  buf,
		spec: &Spec{buf: buf[InstanceHeaderSize:]},
	}
}

// ParseInstance returns an Instance reading directly from buf, e.g. a record
// loaded from the task table. The buffer is not copied.
func ParseInstance(buf []byte) (*Instance, error) {
	if len(buf) < InstanceHeaderSize {
		return nil, zerr.With(ErrMalformedInstance, "size", len(buf))
	}
	spec, err := ParseSpec(buf[InstanceHeaderSize:])
	if err != nil {
		return nil, zerr.Wrap(err, "malformed task instance")
	}
	return &Instance{buf: buf, spec: spec}, nil
}

// ID returns the instance identifier.
func (in *Instance) ID() InstanceID {
	return InstanceID(getID(in.buf, offInstanceID))
}

// State returns the current scheduling state.
func (in *Instance) State() SchedulingState {
	return SchedulingState(getUint32(in.buf, offInstanceState))
}

// SetState overwrites the scheduling state. Any value is accepted.
func (in *Instance) SetState(state SchedulingState) {
	putUint32(in.buf, offInstanceState, uint32(state))
}

// Node returns the node the instance is assigned to.
func (in *Instance) Node() NodeID {
	return NodeID(getID(in.buf, offInstanceNode))
}

// SetNode overwrites the assigned node.
func (in *Instance) SetNode(node NodeID) {
	putID(in.buf, offInstanceNode, UniqueID(node))
}

// Apply writes the state and node carried by u.
func (in *Instance) Apply(u Update) {
	in.SetState(u.State)
	in.SetNode(u.Node)
}

// Spec returns the embedded task spec. It shares the instance's storage.
func (in *Instance) Spec() *Spec {
	return in.spec
}

// Size returns the encoded size in bytes.
func (in *Instance) Size() int64 {
	return int64(len(in.buf))
}

// Bytes returns the packed record. The slice aliases the instance.
func (in *Instance) Bytes() []byte {
	return in.buf
}

// Clone returns an independent copy of the instance.
func (in *Instance) Clone() *Instance {
	buf := make([]byte, len(in.buf))
	copy(buf, in.buf)
	return &Instance{buf: buf, spec: &Spec{buf: buf[InstanceHeaderSize:]}}
}

// Release drops the instance's storage, including the embedded spec copy.
// The instance must not be used afterwards.
func (in *Instance) Release() {
	in.buf = nil
	in.spec = nil
}

// String renders the instance for diagnostics.
func (in *Instance) String() string {
	return fmt.Sprintf("instance %s state=%s node=%s\n%s", in.ID(), in.State(), in.Node(), in.spec)
}
