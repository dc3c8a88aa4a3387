package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/zerr"
)

func objectID(s string) domain.ObjectID {
	return domain.ObjectID(domain.HashID([]byte("object"), []byte(s)))
}

func taskID(s string) domain.TaskID {
	return domain.TaskID(domain.HashID([]byte("task"), []byte(s)))
}

type testArg struct {
	ref *domain.ObjectID
	val []byte
}

func ref(id domain.ObjectID) testArg { return testArg{ref: &id} }
func val(b ...byte) testArg          { return testArg{val: b} }

// buildSpec builds a finished spec or fails the test.
func buildSpec(
	t *testing.T,
	parent domain.TaskID,
	counter int64,
	fn domain.FunctionID,
	numReturns int64,
	args ...testArg,
) *domain.Spec {
	t.Helper()

	var valueSize int64
	for _, a := range args {
		if a.ref == nil {
			valueSize += int64(len(a.val))
		}
	}

	b, err := domain.NewBuilder(parent, counter, fn, int64(len(args)), numReturns, valueSize)
	require.NoError(t, err)

	for i, a := range args {
		var n int64
		if a.ref != nil {
			n, err = b.AddRef(*a.ref)
		} else {
			n, err = b.AddValue(a.val)
		}
		require.NoError(t, err)
		require.Equal(t, int64(i+1), n)
	}

	spec, err := b.Finish()
	require.NoError(t, err)
	return spec
}

func TestBuilder_Scenario(t *testing.T) {
	parent := taskID("P")
	fn := domain.FunctionIDFromName("F")
	r1 := objectID("R1")

	spec := buildSpec(t, parent, 0, fn, 1, ref(r1), val(0x01, 0x02))

	assert.Equal(t, int64(2), spec.NumArgs())
	assert.Equal(t, parent, spec.ParentTaskID())
	assert.Equal(t, int64(0), spec.ParentCounter())
	assert.Equal(t, fn, spec.FunctionID())

	kind, err := spec.ArgKind(0)
	require.NoError(t, err)
	assert.Equal(t, domain.ArgByRef, kind)

	id, err := spec.ArgID(0)
	require.NoError(t, err)
	assert.Equal(t, r1, id)

	kind, err = spec.ArgKind(1)
	require.NoError(t, err)
	assert.Equal(t, domain.ArgByVal, kind)

	length, err := spec.ArgLength(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	v, err := spec.ArgValue(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, v)

	assert.Equal(t, int64(1), spec.NumReturns())
	ret, err := spec.Return(0)
	require.NoError(t, err)
	assert.Equal(t, domain.ComputeReturnID(spec.TaskID(), 0), ret)

	assert.False(t, spec.TaskID().IsNil())
	assert.True(t, spec.VerifyID(spec.TaskID()))
}

func TestBuilder_IdenticalInputsProduceIdenticalBytes(t *testing.T) {
	parent := taskID("P")
	fn := domain.FunctionIDFromName("F")

	a := buildSpec(t, parent, 3, fn, 2, ref(objectID("x")), val(1, 2, 3), val())
	b := buildSpec(t, parent, 3, fn, 2, ref(objectID("x")), val(1, 2, 3), val())

	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Equal(t, a.TaskID(), b.TaskID())
	assert.Equal(t, a.Returns(), b.Returns())
}

func TestBuilder_Distinctness(t *testing.T) {
	parent := taskID("P")
	fn := domain.FunctionIDFromName("F")
	x, y := objectID("x"), objectID("y")

	base := buildSpec(t, parent, 0, fn, 1, ref(x), val(1, 2))

	variants := []struct {
		name string
		spec *domain.Spec
	}{
		{"different parent", buildSpec(t, taskID("Q"), 0, fn, 1, ref(x), val(1, 2))},
		{"different counter", buildSpec(t, parent, 1, fn, 1, ref(x), val(1, 2))},
		{"different function", buildSpec(t, parent, 0, domain.FunctionIDFromName("G"), 1, ref(x), val(1, 2))},
		{"different ref", buildSpec(t, parent, 0, fn, 1, ref(y), val(1, 2))},
		{"different value", buildSpec(t, parent, 0, fn, 1, ref(x), val(1, 3))},
		{"swapped order", buildSpec(t, parent, 0, fn, 1, val(1, 2), ref(x))},
		{"value split differently", buildSpec(t, parent, 0, fn, 1, ref(x), val(1), val(2))},
		{"extra empty value", buildSpec(t, parent, 0, fn, 1, ref(x), val(1, 2), val())},
		{"ref bytes passed by value", buildSpec(t, parent, 0, fn, 1, val(x[:]...), val(1, 2))},
	}

	seen := map[domain.TaskID]string{base.TaskID(): "base"}
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			prev, dup := seen[v.spec.TaskID()]
			assert.False(t, dup, "task id collides with %q", prev)
			seen[v.spec.TaskID()] = v.name
		})
	}
}

func TestBuilder_ReturnIDs(t *testing.T) {
	spec := buildSpec(t, taskID("P"), 0, domain.FunctionIDFromName("F"), 3, val(9))

	returns := spec.Returns()
	require.Len(t, returns, 3)
	for i, id := range returns {
		got, err := spec.Return(int64(i))
		require.NoError(t, err)
		assert.Equal(t, id, got)
		assert.Equal(t, domain.ComputeReturnID(spec.TaskID(), int64(i)), id)
	}
	assert.NotEqual(t, returns[0], returns[1])
	assert.NotEqual(t, returns[0], returns[2])
	assert.NotEqual(t, returns[1], returns[2])
}

func TestBuilder_ZeroLengthValue(t *testing.T) {
	spec := buildSpec(t, taskID("P"), 0, domain.FunctionIDFromName("F"), 0, val(), ref(objectID("x")))

	kind, err := spec.ArgKind(0)
	require.NoError(t, err)
	assert.Equal(t, domain.ArgByVal, kind)

	length, err := spec.ArgLength(0)
	require.NoError(t, err)
	assert.Zero(t, length)

	v, err := spec.ArgValue(0)
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = spec.ArgID(0)
	require.Error(t, err)
}

func TestBuilder_NoArgsNoReturns(t *testing.T) {
	spec := buildSpec(t, domain.TaskID{}, 0, domain.FunctionIDFromName("noop"), 0)

	assert.Equal(t, int64(domain.SpecHeaderSize), spec.Size())
	assert.Empty(t, spec.Returns())
	assert.True(t, spec.VerifyID(spec.TaskID()))
}

func TestBuilder_ContractViolations(t *testing.T) {
	fn := domain.FunctionIDFromName("F")

	tests := []struct {
		name        string
		run         func(t *testing.T) error
		errContains string
	}{
		{
			name: "negative arg count",
			run: func(t *testing.T) error {
				_, err := domain.NewBuilder(domain.TaskID{}, 0, fn, -1, 0, 0)
				return err
			},
			errContains: "count out of range",
		},
		{
			name: "arg count overflows size",
			run: func(t *testing.T) error {
				_, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 1<<61, 0, 0)
				return err
			},
			errContains: "count out of range",
		},
		{
			name: "return count overflows size",
			run: func(t *testing.T) error {
				_, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 0, 1<<62, 0)
				return err
			},
			errContains: "count out of range",
		},
		{
			name: "value budget overflows size",
			run: func(t *testing.T) error {
				_, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 1, 0, math.MaxInt64-domain.SpecHeaderSize)
				return err
			},
			errContains: "count out of range",
		},
		{
			name: "too many args",
			run: func(t *testing.T) error {
				b, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 1, 0, 0)
				require.NoError(t, err)
				_, err = b.AddRef(objectID("a"))
				require.NoError(t, err)
				_, err = b.AddRef(objectID("b"))
				return err
			},
			errContains: "argument count exceeded",
		},
		{
			name: "value budget exceeded",
			run: func(t *testing.T) error {
				b, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 2, 0, 3)
				require.NoError(t, err)
				_, err = b.AddValue([]byte{1, 2})
				require.NoError(t, err)
				_, err = b.AddValue([]byte{3, 4})
				return err
			},
			errContains: "value byte budget exceeded",
		},
		{
			name: "finish before all args",
			run: func(t *testing.T) error {
				b, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 2, 1, 0)
				require.NoError(t, err)
				_, err = b.AddRef(objectID("a"))
				require.NoError(t, err)
				_, err = b.Finish()
				return err
			},
			errContains: "arguments incomplete",
		},
		{
			name: "finish with unused value budget",
			run: func(t *testing.T) error {
				b, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 1, 1, 4)
				require.NoError(t, err)
				_, err = b.AddValue([]byte{1})
				require.NoError(t, err)
				_, err = b.Finish()
				return err
			},
			errContains: "arguments incomplete",
		},
		{
			name: "append after finish",
			run: func(t *testing.T) error {
				b, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 0, 0, 0)
				require.NoError(t, err)
				_, err = b.Finish()
				require.NoError(t, err)
				_, err = b.AddValue(nil)
				return err
			},
			errContains: "builder already finished",
		},
		{
			name: "finish twice",
			run: func(t *testing.T) error {
				b, err := domain.NewBuilder(domain.TaskID{}, 0, fn, 0, 0, 0)
				require.NoError(t, err)
				_, err = b.Finish()
				require.NoError(t, err)
				_, err = b.Finish()
				return err
			},
			errContains: "builder already finished",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(t)
			require.Error(t, err)
			assert.ErrorContains(t, err, "contract violation")
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestBuilder_FailedAppendDoesNotAdvance(t *testing.T) {
	b, err := domain.NewBuilder(domain.TaskID{}, 0, domain.FunctionIDFromName("F"), 2, 0, 2)
	require.NoError(t, err)

	_, err = b.AddValue([]byte{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, int64(0), b.Filled())

	n, err := b.AddValue([]byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBuilder_ErrorMetadata(t *testing.T) {
	b, err := domain.NewBuilder(domain.TaskID{}, 0, domain.FunctionIDFromName("F"), 0, 0, 0)
	require.NoError(t, err)

	_, err = b.AddRef(objectID("a"))
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, int64(0), zErr.Metadata()["num_args"])
}
