package config

import "fmt"

// Store driver names.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// StoreConfig selects the entity store implementation.
type StoreConfig struct {
	Driver string `koanf:"driver"`
}

func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case StoreDriverMemory, StoreDriverPostgres:
		return nil
	case "":
		return fmt.Errorf("store driver is not configured")
	default:
		return fmt.Errorf("unknown store driver: %s", c.Driver)
	}
}
