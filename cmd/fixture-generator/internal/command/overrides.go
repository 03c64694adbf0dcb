package command

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"fixture-generator/selector"
)

// Overrides is the YAML overrides file. Keys are paths relative to the
// requested type, e.g. "Items[].Quantity" or "Preferences[key]".
//
//	ignore: [Notes]
//	nullable: [Items[].Name]
//	set:
//	  Status: PAID
//	filter:
//	  TotalCents: value > 1000
type Overrides struct {
	Ignore   []string          `yaml:"ignore"`
	Nullable []string          `yaml:"nullable"`
	Set      map[string]any    `yaml:"set"`
	Filter   map[string]string `yaml:"filter"`
}

func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	return ParseOverrides(data)
}

// ParseOverrides parses an overrides file. Unknown keys are rejected.
func ParseOverrides(data []byte) (*Overrides, error) {
	var o Overrides

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse overrides YAML: %w", err)
	}

	return &o, nil
}

// Registry declares the overrides in file order of sections: ignore,
// nullable, set, filter. Map sections are declared in path order.
func (o *Overrides) Registry() (*selector.Registry, error) {
	reg := selector.NewRegistry()

	var errs error
	declare := func(path string, fn func(sel selector.Selector)) {
		sel, err := selector.PathSelector(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}

		fn(sel)
	}

	for _, path := range o.Ignore {
		declare(path, func(sel selector.Selector) { reg.Ignore(sel) })
	}

	for _, path := range o.Nullable {
		declare(path, func(sel selector.Selector) { reg.Nullable(sel) })
	}

	for _, path := range slices.Sorted(maps.Keys(o.Set)) {
		declare(path, func(sel selector.Selector) { reg.Set(sel, o.Set[path]) })
	}

	for _, path := range slices.Sorted(maps.Keys(o.Filter)) {
		declare(path, func(sel selector.Selector) { reg.FilterExpr(sel, o.Filter[path]) })
	}

	if errs != nil {
		return nil, errs
	}

	return reg, reg.Err()
}
