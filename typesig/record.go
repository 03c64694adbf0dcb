package typesig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Record is the realized value of a shape: named fields in declaration order.
type Record struct {
	signature Signature
	names     []string
	values    map[string]any
}

// NewRecord creates an empty record with the given slots.
func NewRecord(sig Signature, names []string) *Record {
	return &Record{
		signature: sig,
		names:     slices.Clone(names),
		values:    make(map[string]any, len(names)),
	}
}

func (r *Record) Signature() Signature {
	return r.signature
}

// Names returns slot names in declaration order.
func (r *Record) Names() []string {
	return slices.Clone(r.names)
}

// Get returns the value of a slot and whether it was set.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set assigns a slot. Unknown slots are rejected.
func (r *Record) Set(name string, value any) error {
	if !slices.Contains(r.names, name) {
		return fmt.Errorf("record %s has no slot %q", r.signature, name)
	}

	r.values[name] = value

	return nil
}

// Map returns a copy of the set slots.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}

	return out
}

// MarshalYAML renders the record as a mapping that keeps slot order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, name := range r.names {
		value := &yaml.Node{}
		if err := value.Encode(r.values[name]); err != nil {
			return nil, fmt.Errorf("encode slot %s: %w", name, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			value,
		)
	}

	return node, nil
}

// MarshalJSON renders the record as an object that keeps slot order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, _ := json.Marshal(name)
		value, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, fmt.Errorf("encode slot %s: %w", name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
