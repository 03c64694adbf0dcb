// Package typesig resolves type requests into canonical signatures and
// describes the structural shape behind every signature.
//
// Two sources of descriptors exist side by side:
//   - reflected Go types, which are always concrete
//   - declared shapes, which carry type parameters, an optional supertype
//     and ordered slots; their values are realized as *Record
//
// Key types:
//   - Signature: base identity plus resolved argument signatures
//   - Expr: a type expression over shape parameters
//   - Universe: shared, concurrency-safe registry and descriptor cache
//   - Descriptor: kind, realized Go type, members, element and key signatures
package typesig
