package analyze

import (
	"context"
	"fmt"
	"go/types"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

// Loader loads Go packages and converts their struct types into shapes.
type Loader struct {
	// Dir is the directory patterns are resolved in, the working directory if empty.
	Dir string
	Log logr.Logger
}

// Load loads the packages matching patterns (e.g. "./store",
// "fixture-generator/warehouse") and converts their exported struct types.
func (l *Loader) Load(ctx context.Context, patterns ...string) (*Catalog, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     l.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = multierr.Append(errs, e)
		}
	}

	if errs != nil {
		return nil, fmt.Errorf("package errors: %w", errs)
	}

	c := newConverter()
	for _, pkg := range pkgs {
		c.processPackage(pkg.Types)
		l.log().V(1).Info("Loaded package", "path", pkg.PkgPath, "roots", len(c.catalog.Roots))
	}

	c.drain()

	return c.catalog, nil
}

func (l *Loader) log() logr.Logger {
	if l.Log.GetSink() == nil {
		return logr.Discard()
	}

	return l.Log
}

// processPackage queues the exported struct types of pkg as roots.
func (c *converter) processPackage(pkg *types.Package) {
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		if _, ok := named.Underlying().(*types.Struct); !ok || isOpaque(named) {
			continue
		}

		c.catalog.Roots = append(c.catalog.Roots, c.nameOf(named.Obj()))
	}
}
