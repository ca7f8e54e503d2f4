// Package config loads the service configuration: HTTP server, datastores,
// logging, and the energy price table the cost metrics consume.
package config

import (
	"fmt"
	"time"

	"dealer-benchmark/internal/benchmark/cost"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Energy    EnergyConfig    `mapstructure:"energy"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	ReadTimeout    int    `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"`   // milliseconds
	MaxCompetitors int    `mapstructure:"max_competitors"` // per compare request
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// EnergyConfig carries the per-unit energy prices the cost metrics use.
// Prices are per liter for combustion categories and per kWh for electric.
type EnergyConfig struct {
	AsOf   string             `mapstructure:"as_of"` // RFC 3339
	Prices map[string]float64 `mapstructure:"prices"`
}

// PriceTable converts the raw config section into the engine's table.
func (e EnergyConfig) PriceTable() (cost.PriceTable, error) {
	table := cost.PriceTable{Prices: make(map[cost.Category]float64, len(e.Prices))}

	if e.AsOf != "" {
		asOf, err := time.Parse(time.RFC3339, e.AsOf)
		if err != nil {
			return cost.PriceTable{}, fmt.Errorf("energy.as_of: %w", err)
		}
		table.AsOf = asOf
	}

	for key, price := range e.Prices {
		if price <= 0 {
			return cost.PriceTable{}, fmt.Errorf("energy.prices.%s: price must be positive", key)
		}
		table.Prices[cost.Category(key)] = price
	}
	return table, nil
}

// NarrativeConfig points at the external narrative-generation service. The
// engine's deterministic fallback covers every failure of this collaborator.
type NarrativeConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
	Enabled bool   `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
