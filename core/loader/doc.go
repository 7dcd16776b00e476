// Package loader provides the feature loading system.
//
// Each HTTP feature implements the Feature interface and registers its own
// routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and LoadAll loads the
// enabled ones, so features like 'dataset' and 'buckets' can be developed
// and tested in isolation.
package loader
