package selector

//go:generate go tool stringer -type=ActionEnum -trimprefix=Action -output=action_string.go

// ActionEnum is the kind of an override.
type ActionEnum int

const (
	_ ActionEnum = iota // skip zero value, use it as a default (invalid) value for ActionEnum

	ActionIgnore
	ActionSet
	ActionSupply
	ActionFilter
	ActionNullable
	ActionSubtype
	ActionOnComplete

	// ActionTotal is a constant that represents the total number of kinds defined
	ActionTotal = int(iota)
)
