package config

import "fmt"

// TCPConfig holds the single configured port of the command server. The
// port lives in exactly one configuration input; nothing else hardcodes it.
type TCPConfig struct {
	Port int `koanf:"port"`
}

func (c *TCPConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid TCP server port: %d", c.Port)
	}
	return nil
}
