package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidCount is returned when a declared argument, return or byte count is
	// negative, or so large that the encoded size would not fit in memory.
	ErrInvalidCount = zerr.New("task spec contract violation: count out of range")

	// ErrTooManyArgs is returned when more arguments are appended than were declared.
	ErrTooManyArgs = zerr.New("task spec contract violation: argument count exceeded")

	// ErrValueBudgetExceeded is returned when by-value payloads exceed the declared byte budget.
	ErrValueBudgetExceeded = zerr.New("task spec contract violation: value byte budget exceeded")

	// ErrArgsIncomplete is returned when finishing a spec before every declared argument is filled.
	ErrArgsIncomplete = zerr.New("task spec contract violation: arguments incomplete")

	// ErrBuilderFinished is returned when a builder is used after Finish.
	ErrBuilderFinished = zerr.New("task spec contract violation: builder already finished")

	// ErrWrongArgKind is returned when an argument is read through the accessor of the other kind.
	ErrWrongArgKind = zerr.New("task spec contract violation: wrong argument kind")

	// ErrIndexOutOfRange is returned when an argument or return index is out of range.
	ErrIndexOutOfRange = zerr.New("task spec contract violation: index out of range")

	// ErrMalformedSpec is returned when a byte buffer is not a valid finished task spec.
	ErrMalformedSpec = zerr.New("malformed task spec")

	// ErrMalformedInstance is returned when a byte buffer is not a valid task instance.
	ErrMalformedInstance = zerr.New("malformed task instance")

	// ErrMalformedUpdate is returned when a byte buffer is not a valid task update.
	ErrMalformedUpdate = zerr.New("malformed task update")

	// ErrInvalidID is returned when an identifier cannot be decoded.
	ErrInvalidID = zerr.New("invalid identifier")

	// ErrInvalidState is returned when a scheduling state name is not recognised.
	ErrInvalidState = zerr.New("invalid scheduling state")

	// ErrDuplicateTaskName is returned when a manifest declares the same task name twice.
	ErrDuplicateTaskName = zerr.New("duplicate task name")

	// ErrUnknownTaskRef is returned when a manifest argument references an unknown task or return index.
	ErrUnknownTaskRef = zerr.New("unknown task reference")

	// ErrInvalidArg is returned when a manifest argument is not exactly one of value, hex, object or ref.
	ErrInvalidArg = zerr.New("invalid argument")

	// ErrInstanceNotFound is returned when a task instance is not present in the task table.
	ErrInstanceNotFound = zerr.New("task instance not found")

	// ErrIDMismatch is returned when a spec's stored task id does not match its contents.
	ErrIDMismatch = zerr.New("task id does not match spec contents")

	// ErrChecksumMismatch is returned when a transported spec fails its integrity check.
	ErrChecksumMismatch = zerr.New("checksum mismatch")
)
