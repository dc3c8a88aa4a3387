package domain

// ArgKind says whether an argument is passed by reference or by value.
type ArgKind uint32

const (
	// ArgByRef is an argument naming a previously produced object.
	ArgByRef ArgKind = 0
	// ArgByVal is an argument whose bytes are stored inline in the spec.
	ArgByVal ArgKind = 1
)

// String returns the argument kind name.
func (k ArgKind) String() string {
	switch k {
	case ArgByRef:
		return "ref"
	case ArgByVal:
		return "val"
	default:
		return "unknown"
	}
}

func (k ArgKind) valid() bool {
	return k == ArgByRef || k == ArgByVal
}
