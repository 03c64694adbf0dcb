package primitive

import (
	"math"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named type over any of the basic kinds above
	KindAny           // the empty interface, produced as a string

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat() || k.IsComplex()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsComplex() bool {
	switch k {
	default:
		return false
	case KindComplex64, KindComplex128:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64, KindComplex64:
		return 64
	case KindComplex128:
		return 128
	}
}

var exactTypes = map[reflect.Type]KindEnum{
	reflect.TypeFor[int]():           KindInt,
	reflect.TypeFor[int8]():          KindInt8,
	reflect.TypeFor[int16]():         KindInt16,
	reflect.TypeFor[int32]():         KindInt32,
	reflect.TypeFor[int64]():         KindInt64,
	reflect.TypeFor[uint]():          KindUint,
	reflect.TypeFor[uint8]():         KindUint8,
	reflect.TypeFor[uint16]():        KindUint16,
	reflect.TypeFor[uint32]():        KindUint32,
	reflect.TypeFor[uint64]():        KindUint64,
	reflect.TypeFor[float32]():       KindFloat32,
	reflect.TypeFor[float64]():       KindFloat64,
	reflect.TypeFor[complex64]():     KindComplex64,
	reflect.TypeFor[complex128]():    KindComplex128,
	reflect.TypeFor[bool]():          KindBool,
	reflect.TypeFor[string]():        KindString,
	reflect.TypeFor[time.Time]():     KindTime,
	reflect.TypeFor[time.Duration](): KindDuration,
	reflect.TypeFor[any]():           KindAny,
}

var basicKinds = map[reflect.Kind]KindEnum{
	reflect.Int:        KindInt,
	reflect.Int8:       KindInt8,
	reflect.Int16:      KindInt16,
	reflect.Int32:      KindInt32,
	reflect.Int64:      KindInt64,
	reflect.Uint:       KindUint,
	reflect.Uint8:      KindUint8,
	reflect.Uint16:     KindUint16,
	reflect.Uint32:     KindUint32,
	reflect.Uint64:     KindUint64,
	reflect.Float32:    KindFloat32,
	reflect.Float64:    KindFloat64,
	reflect.Complex64:  KindComplex64,
	reflect.Complex128: KindComplex128,
	reflect.Bool:       KindBool,
	reflect.String:     KindString,
}

func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	// check if true primitive type
	if kind, ok := exactTypes[rtype]; ok {
		return kind
	}

	// check if it's a primitive enum type
	if _, ok := basicKinds[rtype.Kind()]; ok {
		return KindPrimitiveEnum
	}

	return 0
}

// BasicKind returns the kind of the underlying basic type, so a primitive
// enum over int8 reports KindInt8.
func BasicKind(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if kind := FromReflectType(rtype); kind != KindPrimitiveEnum {
		return kind
	}

	return basicKinds[rtype.Kind()]
}
