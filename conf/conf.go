package conf

import (
	"fmt"

	"github.com/squareup/colstore/errors"
	"golang.org/x/text/language"
)

const (
	DefaultInitialCapacity       = 16
	DefaultGrowthFactor          = 2.0
	DefaultMaxCapacity           = 1 << 24
	DefaultMetricsHTTPListenAddr = "localhost:2112"

	// MaxRecords is the largest capacity the null bitmap can address.
	MaxRecords uint64 = 1<<32 - 1
)

// Config controls how tables size their column storages and how the shell exposes metrics.
type Config struct {
	InitialCapacity       int     `json:"initial_capacity,omitempty" help:"Capacity of a table's columns when the first record is added" default:"16"`
	GrowthFactor          float64 `json:"growth_factor,omitempty" help:"Factor column capacity is multiplied by when a table is full" default:"2"`
	MaxCapacity           int     `json:"max_capacity,omitempty" help:"Largest number of records a table can hold" default:"16777216"`
	TextCollation         string  `json:"text_collation,omitempty" help:"BCP 47 tag used to order text columns. Empty orders by bytes"`
	MetricsEnabled        bool    `json:"metrics_enabled,omitempty" help:"Export Prometheus metrics"`
	MetricsHTTPListenAddr string  `json:"metrics_http_listen_addr,omitempty" help:"Address the metrics exporter listens on" default:"localhost:2112"`
}

func (c *Config) Validate() error {
	if c.InitialCapacity < 1 {
		return errors.NewInvalidConfigurationError("InitialCapacity must be >= 1")
	}
	if c.GrowthFactor <= 1 {
		return errors.NewInvalidConfigurationError("GrowthFactor must be > 1")
	}
	if c.MaxCapacity < c.InitialCapacity {
		return errors.NewInvalidConfigurationError("MaxCapacity must be >= InitialCapacity")
	}
	if uint64(c.MaxCapacity) > MaxRecords {
		return errors.NewInvalidConfigurationError(fmt.Sprintf("MaxCapacity must be <= %d", MaxRecords))
	}
	if c.TextCollation != "" {
		if _, err := language.Parse(c.TextCollation); err != nil {
			return errors.NewInvalidConfigurationError(fmt.Sprintf("TextCollation %q is not a valid language tag", c.TextCollation))
		}
	}
	if c.MetricsEnabled && c.MetricsHTTPListenAddr == "" {
		return errors.NewInvalidConfigurationError("MetricsHTTPListenAddr must be specified")
	}
	return nil
}

func NewDefaultConfig() *Config {
	return &Config{
		InitialCapacity:       DefaultInitialCapacity,
		GrowthFactor:          DefaultGrowthFactor,
		MaxCapacity:           DefaultMaxCapacity,
		MetricsHTTPListenAddr: DefaultMetricsHTTPListenAddr,
	}
}

// NewTestConfig is a small configuration that makes tables grow after a handful of records.
func NewTestConfig() *Config {
	return &Config{
		InitialCapacity: 2,
		GrowthFactor:    2.0,
		MaxCapacity:     1000,
	}
}
