package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// UpdateSize is the size of a packed Update.
const UpdateSize = 4 + IDSize

// Update carries a new scheduling state and node for a task instance. The
// instance it applies to travels alongside it and is not part of the value.
type Update struct {
	State SchedulingState
	Node  NodeID
}

// NewUpdate returns an Update.
func NewUpdate(state SchedulingState, node NodeID) Update {
	return Update{State: state, Node: node}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (u Update) MarshalBinary() ([]byte, error) {
	buf := make([]byte, UpdateSize)
	putUint32(buf, 0, uint32(u.State))
	putID(buf, 4, UniqueID(u.Node))
	return buf, nil
}

// ParseUpdate decodes a packed Update.
func ParseUpdate(buf []byte) (Update, error) {
	if len(buf) != UpdateSize {
		return Update{}, zerr.With(ErrMalformedUpdate, "size", len(buf))
	}
	return Update{
		State: SchedulingState(getUint32(buf, 0)),
		Node:  NodeID(getID(buf, 4)),
	}, nil
}

func (u Update) String() string {
	return fmt.Sprintf("state=%s node=%s", u.State, u.Node)
}
