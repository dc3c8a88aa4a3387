package domain

import "go.trai.ch/zerr"

// Builder constructs a task spec in a single pre-sized buffer.
//
// Arguments are appended strictly in positional order with AddRef and AddValue.
// Finish computes the task id and the return ids and hands the buffer over to
// an immutable Spec; the builder cannot be used afterwards.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	buf []byte
}

// NewBuilder opens a spec with the given header fields. The buffer is sized to
// hold numArgs descriptors, argsValueSize bytes of inline values and
// numReturns return ids, and is never reallocated.
func NewBuilder(
	parent TaskID,
	parentCounter int64,
	fn FunctionID,
	numArgs, numReturns, argsValueSize int64,
) (*Builder, error) {
	if !fitsSpec(numArgs, numReturns, argsValueSize) {
		err := zerr.With(ErrInvalidCount, "num_args", numArgs)
		err = zerr.With(err, "num_returns", numReturns)
		return nil, zerr.With(err, "args_value_size", argsValueSize)
	}

	buf := make([]byte, specSize(numArgs, numReturns, argsValueSize))
	putID(buf, offParentTaskID, UniqueID(parent))
	putInt64(buf, offParentCounter, parentCounter)
	putID(buf, offFunctionID, UniqueID(fn))
	putInt64(buf, offNumArgs, numArgs)
	putInt64(buf, offNumReturns, numReturns)
	putInt64(buf, offArgsValueSize, argsValueSize)

	return &Builder{buf: buf}, nil
}

// Filled returns the number of arguments appended so far.
func (b *Builder) Filled() int64 {
	if b.buf == nil {
		return 0
	}
	return getInt64(b.buf, offArgsFilled)
}

// AddRef appends a by-reference argument. It returns the number of arguments
// filled so far, including this one.
func (b *Builder) AddRef(id ObjectID) (int64, error) {
	idx, err := b.nextSlot()
	if err != nil {
		return 0, err
	}

	off := argDescriptorOffset(idx)
	putUint32(b.buf, off+argOffKind, uint32(ArgByRef))
	putID(b.buf, off+argOffPayload, UniqueID(id))

	putInt64(b.buf, offArgsFilled, idx+1)
	return idx + 1, nil
}

// AddValue appends a by-value argument, copying data into the spec's value
// region. A zero-length value is legal. It returns the number of arguments
// filled so far, including this one.
func (b *Builder) AddValue(data []byte) (int64, error) {
	idx, err := b.nextSlot()
	if err != nil {
		return 0, err
	}

	length := int64(len(data))
	used := getInt64(b.buf, offArgsValueFilled)
	budget := getInt64(b.buf, offArgsValueSize)
	if used+length > budget {
		err := zerr.With(ErrValueBudgetExceeded, "arg_index", idx)
		err = zerr.With(err, "length", length)
		return 0, zerr.With(err, "remaining", budget-used)
	}

	numArgs := getInt64(b.buf, offNumArgs)
	valueOff := valueRegionOffset(numArgs) + used
	copy(b.buf[valueOff:valueOff+length], data)

	off := argDescriptorOffset(idx)
	putUint32(b.buf, off+argOffKind, uint32(ArgByVal))
	putInt64(b.buf, off+argOffValueOff, valueOff)
	putInt64(b.buf, off+argOffValueLen, length)

	putInt64(b.buf, offArgsValueFilled, used+length)
	putInt64(b.buf, offArgsFilled, idx+1)
	return idx + 1, nil
}

// nextSlot returns the index of the next unfilled argument.
func (b *Builder) nextSlot() (int64, error) {
	if b.buf == nil {
		return 0, ErrBuilderFinished
	}
	idx := getInt64(b.buf, offArgsFilled)
	numArgs := getInt64(b.buf, offNumArgs)
	if idx >= numArgs {
		return 0, zerr.With(ErrTooManyArgs, "num_args", numArgs)
	}
	return idx, nil
}

// Finish computes the task id from the parent id, parent counter, function id
// and the ordered arguments, derives one object id per declared return, and
// returns the finished Spec. Every declared argument must have been appended
// and the value byte budget fully used.
func (b *Builder) Finish() (*Spec, error) {
	if b.buf == nil {
		return nil, ErrBuilderFinished
	}

	filled := getInt64(b.buf, offArgsFilled)
	numArgs := getInt64(b.buf, offNumArgs)
	if filled != numArgs {
		err := zerr.With(ErrArgsIncomplete, "filled", filled)
		return nil, zerr.With(err, "num_args", numArgs)
	}
	used := getInt64(b.buf, offArgsValueFilled)
	budget := getInt64(b.buf, offArgsValueSize)
	if used != budget {
		err := zerr.With(ErrArgsIncomplete, "value_bytes", used)
		return nil, zerr.With(err, "args_value_size", budget)
	}

	spec := &Spec{buf: b.buf}
	b.buf = nil

	taskID := spec.computeTaskID()
	putID(spec.buf, offTaskID, UniqueID(taskID))

	numReturns := spec.NumReturns()
	retOff := returnTableOffset(numArgs, budget)
	for i := range numReturns {
		putID(spec.buf, retOff+i*IDSize, UniqueID(ComputeReturnID(taskID, i)))
	}

	return spec, nil
}
