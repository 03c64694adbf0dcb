package typesig

import (
	"reflect"
)

var (
	anyType    = reflect.TypeFor[any]()
	recordType = reflect.TypeFor[*Record]()
	errorType  = reflect.TypeFor[error]()
)

// typeStr returns the base identity of a named or builtin Go type.
func typeStr(t reflect.Type) string {
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}

// IsUnconstrained reports whether t is the empty interface.
func IsUnconstrained(t reflect.Type) bool {
	return t == anyType
}

// RecordType is the Go type every shape is realized as.
func RecordType() reflect.Type {
	return recordType
}
