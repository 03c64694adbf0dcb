// Package analyze loads Go packages and converts their struct types into
// shapes, so that values can be generated for types that are not compiled
// into the generator.
//
// It uses golang.org/x/tools/go/packages with go/types. Every exported
// struct type of the loaded packages becomes a shape named after its package
// and type ("store.Order"); the structs they reference are converted too.
// Generic types keep their type parameters, anonymous structs become
// synthetic shapes named after the field that declares them.
package analyze
