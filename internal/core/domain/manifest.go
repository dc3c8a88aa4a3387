package domain

// Manifest is an ordered list of task definitions submitted by one parent task.
type Manifest struct {
	// Parent is the task submitting the tasks. Zero for a root submission.
	Parent TaskID
	// Counter is the parent counter assigned to the first task; later tasks
	// take consecutive values.
	Counter int64
	Tasks   []TaskDef
}

// TaskDef describes one task to build.
type TaskDef struct {
	// Name is local to the manifest and used by ReturnRef.
	Name     string
	Function string
	Returns  int64
	Args     []ArgDef
}

// ArgDef describes one argument. Exactly one of the variants is meaningful,
// selected by Kind and, for references, by whether Ref is set.
type ArgDef struct {
	Kind   ArgKind
	Value  []byte
	Object ObjectID
	Ref    *ReturnRef
}

// ReturnRef points at a return value of an earlier task in the same manifest.
type ReturnRef struct {
	Task  string
	Index int64
}

// ValueSize returns the total number of by-value bytes in the definition.
func (t *TaskDef) ValueSize() int64 {
	var n int64
	for _, a := range t.Args {
		if a.Kind == ArgByVal {
			n += int64(len(a.Value))
		}
	}
	return n
}
