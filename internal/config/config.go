package config

import (
	"fmt"
	"strings"

	"github.com/samir0607/InventoryMgmtSystem/pkg/config"
	"github.com/samir0607/InventoryMgmtSystem/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Server   config.TCPConfig      `koanf:"server"`
	Ops      config.HTTPConfig     `koanf:"ops"`
	Store    config.StoreConfig    `koanf:"store"`
	Database config.DatabaseConfig `koanf:"database"`
	Log      config.LogConfig      `koanf:"log"`
	PProf    config.PProfConfig    `koanf:"pprof"`
	Shutdown config.ShutdownConfig `koanf:"shutdown"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.Server.Port))

	b.WriteString("\n--- Ops Configuration ---\n")
	b.WriteString(fmt.Sprintf("  ops.port: %d\n", c.Ops.Port))
	b.WriteString(fmt.Sprintf("  ops.maxHeaderBytes: %d\n", c.Ops.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  ops.timeout.read: %v\n", c.Ops.Timeout.Read))
	b.WriteString(fmt.Sprintf("  ops.timeout.write: %v\n", c.Ops.Timeout.Write))
	b.WriteString(fmt.Sprintf("  ops.timeout.idle: %v\n", c.Ops.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  ops.timeout.readHeader: %v\n", c.Ops.Timeout.ReadHeader))

	b.WriteString("\n--- Store Configuration ---\n")
	b.WriteString(fmt.Sprintf("  store.driver: %s\n", c.Store.Driver))
	if c.Store.Driver == config.StoreDriverPostgres {
		b.WriteString(fmt.Sprintf("  database.url: %s\n", maskURL(c.Database.URL)))
		b.WriteString(fmt.Sprintf("  database.connect.timeout: %s\n", c.Database.Timeout))
	}

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Ops.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	// The database section only matters for the postgres driver.
	if c.Store.Driver == config.StoreDriverPostgres {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	return nil
}
