package primitive_test

import (
	"fmt"
	"reflect"
	"time"

	"fixture-generator/primitive"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[any]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	fmt.Println(primitive.BasicKind(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.KindUint16.Bits(), primitive.KindInt8.IsSigned(), primitive.KindFloat32.IsInteger())
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindAny
	// KindEnum(0)
	// KindString
	// 16 true false
}
