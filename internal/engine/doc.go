// Package engine populates values for the nodes of a graph.
//
// Every node runs through the same pipeline, first match wins:
//   - ignore: the node is left untouched
//   - fixed value
//   - custom generator
//   - leaf producer
//   - container strategy (slices, maps, arrays)
//   - instantiation: constructors, then raw allocation
//
// Filters retry the pipeline of their node, callbacks observe accepted values.
package engine
