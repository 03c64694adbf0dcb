package typesig

//go:generate go tool stringer -type=KindEnum -trimprefix=Kind -output=kind_string.go

type KindEnum int

const (
	KindUnknown KindEnum = iota
	KindLeaf
	KindStructural
	KindCollection
	KindMap
	KindArray

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsContainer reports whether values of the kind hold a variable or fixed number of elements.
func (k KindEnum) IsContainer() bool {
	switch k {
	default:
		return false
	case KindCollection, KindMap, KindArray:
		return true
	}
}
