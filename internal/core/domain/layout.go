package domain

import (
	"encoding/binary"
	"math"
)

// Byte layout of a packed task spec. Every offset is relative to the start of
// the record, so a buffer can be copied verbatim and read in place.
const (
	offTaskID          = 0
	offParentTaskID    = offTaskID + IDSize
	offParentCounter   = offParentTaskID + IDSize
	offFunctionID      = offParentCounter + 8
	offNumArgs         = offFunctionID + IDSize
	offArgsFilled      = offNumArgs + 8
	offNumReturns      = offArgsFilled + 8
	offArgsValueSize   = offNumReturns + 8
	offArgsValueFilled = offArgsValueSize + 8

	// SpecHeaderSize is the size of the fixed header preceding the argument table.
	SpecHeaderSize = offArgsValueFilled + 8

	// ArgDescriptorSize is the size of one entry in the argument table.
	ArgDescriptorSize = 4 + IDSize

	argOffKind     = 0
	argOffPayload  = 4
	argOffValueOff = argOffPayload
	argOffValueLen = argOffPayload + 8
)

// specSize returns the encoded size of a spec with the given declared shape.
// The counts must already have passed fitsSpec.
func specSize(numArgs, numReturns, argsValueSize int64) int64 {
	return SpecHeaderSize + numArgs*ArgDescriptorSize + argsValueSize + numReturns*IDSize
}

// fitsSpec reports whether the counts are non-negative and the encoded size
// can be allocated as a single byte slice.
func fitsSpec(numArgs, numReturns, argsValueSize int64) bool {
	if numArgs < 0 || numReturns < 0 || argsValueSize < 0 {
		return false
	}
	room := int64(math.MaxInt) - SpecHeaderSize
	if numArgs > room/ArgDescriptorSize {
		return false
	}
	room -= numArgs * ArgDescriptorSize
	if argsValueSize > room {
		return false
	}
	room -= argsValueSize
	return numReturns <= room/IDSize
}

func argDescriptorOffset(i int64) int64 {
	return SpecHeaderSize + i*ArgDescriptorSize
}

func valueRegionOffset(numArgs int64) int64 {
	return argDescriptorOffset(numArgs)
}

func returnTableOffset(numArgs, argsValueSize int64) int64 {
	return valueRegionOffset(numArgs) + argsValueSize
}

func getInt64(buf []byte, off int64) int64 {
	return int64(binary.LittleEndian.Uint64(buf[off : off+8]))
}

func putInt64(buf []byte, off, v int64) {
	binary.LittleEndian.PutUint64(buf[off:off+8], uint64(v))
}

func getUint32(buf []byte, off int64) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

func putUint32(buf []byte, off int64, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}

func putID(buf []byte, off int64, id UniqueID) {
	copy(buf[off:off+IDSize], id[:])
}

func getID(buf []byte, off int64) UniqueID {
	var id UniqueID
	copy(id[:], buf[off:off+IDSize])
	return id
}
