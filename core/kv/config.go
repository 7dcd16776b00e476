package kv

// Config holds configuration for the bucket store.
type Config struct {
	// Driver selects the backend: memory, database or object.
	Driver string `mapstructure:"driver" default:"memory"`
	// Prefix is the object name prefix used by the object driver.
	Prefix string `mapstructure:"prefix" default:"buckets"`
	// Migrate creates the bucket table on startup when the database driver is used.
	Migrate bool `mapstructure:"migrate" default:"true"`
}
