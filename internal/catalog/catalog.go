// Package catalog populates the object and command registries with every
// built-in type.
package catalog

import (
	"sync"

	"github.com/dshills/mapforge/internal/command"
	"github.com/dshills/mapforge/internal/geo"
	"github.com/dshills/mapforge/internal/object"
)

// Catalog holds a matching pair of registries.
type Catalog struct {
	Objects  *object.Registry
	Commands *command.Registry
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the process-wide catalog, building and sealing it on
// first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = New()
		if defaultErr == nil {
			defaultCatalog.Seal()
		}
	})
	return defaultCatalog, defaultErr
}

// New builds an unsealed catalog with the core and geo types registered.
// Callers may register their own types before sealing it.
func New() (*Catalog, error) {
	c := &Catalog{
		Objects:  object.NewRegistry(),
		Commands: command.NewRegistry(),
	}
	if err := geo.RegisterObjects(c.Objects); err != nil {
		return nil, err
	}
	if err := command.RegisterCore(c.Commands, c.Objects); err != nil {
		return nil, err
	}
	if err := geo.RegisterCommands(c.Commands, c.Objects); err != nil {
		return nil, err
	}
	return c, nil
}

// Seal rejects further registrations on both registries.
func (c *Catalog) Seal() {
	c.Objects.Seal()
	c.Commands.Seal()
}
