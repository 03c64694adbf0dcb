package analyze

import (
	"slices"

	"go.uber.org/multierr"

	"fixture-generator/typesig"
)

// Catalog is the result of loading packages.
type Catalog struct {
	// Shapes in the order they were converted.
	Shapes []typesig.Shape
	// Roots are the exported struct types of the loaded packages.
	Roots []string
}

// Shape returns the converted shape with the given name.
func (c *Catalog) Shape(name string) (typesig.Shape, bool) {
	i := slices.IndexFunc(c.Shapes, func(s typesig.Shape) bool { return s.Name == name })
	if i < 0 {
		return typesig.Shape{}, false
	}

	return c.Shapes[i], true
}

// Register adds every shape to u.
func (c *Catalog) Register(u *typesig.Universe) error {
	var err error
	for _, s := range c.Shapes {
		err = multierr.Append(err, u.Register(s))
	}

	return err
}
