// Package loader provides the feature loading system.
//
// Each feature (imports, masterdata) implements Feature and mounts its routes in
// Load. The Manager keeps them in registration order and loads the enabled ones.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
