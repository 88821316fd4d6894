// Package config loads mapper configuration from YAML: the connection, the
// logging level, the default result shape and the named statements.
//
//	driver: sqlite
//	database:
//	  database: app.db
//	log_level: info
//	default_shape: map
//	map_keys: snake
//	queries:
//	  - name: foos
//	    sql: SELECT id, name FROM foos WHERE id > ?
//	    shape: object:foo
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/sqlmapper/connector"
	"github.com/Konsultn-Engineering/sqlmapper/registry"
	"github.com/Konsultn-Engineering/sqlmapper/schema"
	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

// Config is the top level configuration file.
type Config struct {
	Driver       string           `yaml:"driver"`
	Database     connector.Config `yaml:"database"`
	LogLevel     string           `yaml:"log_level"`
	DefaultShape string           `yaml:"default_shape"`
	MapKeys      string           `yaml:"map_keys"`
	Queries      []Query          `yaml:"queries"`
}

// Query is one named statement.
type Query struct {
	Name  string `yaml:"name"`
	SQL   string `yaml:"sql"`
	Shape string `yaml:"shape"`
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document. Unknown keys are
// rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the query list and the enumerated settings.
func (c *Config) Validate() error {
	seen := make(map[string]int, len(c.Queries))
	for i, q := range c.Queries {
		if q.Name == "" {
			return fmt.Errorf("queries[%d]: name is required", i)
		}
		if q.SQL == "" {
			return fmt.Errorf("queries[%d] %q: sql is required", i, q.Name)
		}
		if j, dup := seen[q.Name]; dup {
			return fmt.Errorf("queries[%d]: name %q already used by queries[%d]", i, q.Name, j)
		}
		seen[q.Name] = i
	}
	if _, err := schema.ParseColumnNaming(c.MapKeys); err != nil {
		return fmt.Errorf("map_keys: %w", err)
	}
	return nil
}

// KeyNaming returns the Map key strategy named by map_keys.
func (c *Config) KeyNaming() (schema.ColumnNamingStrategy, error) {
	t, err := schema.ParseColumnNaming(c.MapKeys)
	if err != nil {
		return nil, err
	}
	if t == schema.ColumnSnakeCase {
		return schema.DefaultColumnNaming(), nil
	}
	return schema.NewColumnNamingStrategy(t), nil
}

// Apply registers the configured statements and default shape with reg.
// Object shapes are looked up by name in objects.
func (c *Config) Apply(reg *registry.Registry, objects map[string]shape.Shape) error {
	def, err := shape.Parse(c.DefaultShape, objects)
	if err != nil {
		return fmt.Errorf("default_shape: %w", err)
	}

	regs := make([]registry.Registration, 0, len(c.Queries))
	for _, q := range c.Queries {
		s, err := shape.Parse(q.Shape, objects)
		if err != nil {
			return fmt.Errorf("query %q: %w", q.Name, err)
		}
		regs = append(regs, registry.Registration{Name: q.Name, Statement: q.SQL, Shape: s})
	}

	reg.SetDefaultShape(def)
	reg.Configure(regs...)
	return nil
}
