package typesig

import (
	"errors"
	"fmt"
)

// Shape declares a structural type with type parameters.
// Members are the slots of the supertype chain followed by own slots,
// in declaration order. An own slot named like an inherited one replaces it in place.
type Shape struct {
	Name    string
	Params  []string
	Extends *Expr
	Slots   []Slot
}

// Slot is a named, typed member of a shape.
type Slot struct {
	Name string
	Type Expr
}

func (s *Shape) validate() error {
	if s.Name == "" {
		return errors.New("shape name is empty")
	}

	params := make(map[string]struct{}, len(s.Params))
	for _, p := range s.Params {
		if p == "" {
			return fmt.Errorf("shape %s: empty type parameter name", s.Name)
		}

		if _, dup := params[p]; dup {
			return fmt.Errorf("shape %s: duplicate type parameter %q", s.Name, p)
		}

		params[p] = struct{}{}
	}

	if s.Extends != nil && s.Extends.ShapeName() == "" {
		return fmt.Errorf("shape %s: supertype must be a shape application, got %s", s.Name, s.Extends)
	}

	slots := make(map[string]struct{}, len(s.Slots))
	for _, slot := range s.Slots {
		if slot.Name == "" {
			return fmt.Errorf("shape %s: slot without a name", s.Name)
		}

		if _, dup := slots[slot.Name]; dup {
			return fmt.Errorf("shape %s: duplicate slot %q", s.Name, slot.Name)
		}

		slots[slot.Name] = struct{}{}
	}

	return nil
}
