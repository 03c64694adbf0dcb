package node

//go:generate go tool stringer -type=TerminationEnum,RoleEnum -output=kind_string.go

// TerminationEnum tells why a node was built without children.
type TerminationEnum int

const (
	TerminationNone TerminationEnum = iota
	TerminationCycleDetected
	TerminationMaxDepthExceeded

	// TerminationTotal is a constant that represents the total number of kinds defined
	TerminationTotal = int(iota)
)

// RoleEnum is the position a node takes inside its parent.
type RoleEnum int

const (
	RoleRoot RoleEnum = iota
	RoleMember
	RoleElement
	RoleKey
	RoleValue

	// RoleTotal is a constant that represents the total number of kinds defined
	RoleTotal = int(iota)
)

// Segment is the path segment rendered for the role. Members render their name.
func (r RoleEnum) Segment() string {
	switch r {
	default:
		return ""
	case RoleElement, RoleValue:
		return "[]"
	case RoleKey:
		return "[key]"
	}
}
