package config

import (
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
	// Rows holds inline data, one sequence of values per row.
	Rows []yaml.Node `yaml:"rows"`
}

type Config struct {
	Tables []Table `yaml:"tables"`
}

// DefaultPath returns the catalog location used when none is given.
func DefaultPath() (string, error) {
	dir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "couldn't get user home directory")
	}
	return filepath.Join(dir, ".datalite", "catalog.yaml"), nil
}

// Read loads a catalog file and checks that table and column names are unique.
// Column types are parsed lazily by Schema.
func Read(path string, logger log.Logger) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var config Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}

	tables := map[string]bool{}
	for _, table := range config.Tables {
		if table.Name == "" {
			return nil, status.Errorf(status.InvalidArgument, "table without a name in %s", path)
		}
		if tables[table.Name] {
			return nil, status.Errorf(status.InvalidArgument, "duplicate table '%s'", table.Name)
		}
		tables[table.Name] = true

		columns := map[string]bool{}
		for _, column := range table.Columns {
			if columns[column.Name] {
				return nil, status.Errorf(status.InvalidArgument, "duplicate column '%s' in table '%s'", column.Name, table.Name)
			}
			columns[column.Name] = true
		}
		level.Debug(logger).Log("msg", "read table", "table", table.Name, "columns", len(table.Columns), "rows", len(table.Rows))
	}

	return &config, nil
}

// Table returns the table with the given name.
func (config *Config) Table(name string) (*Table, bool) {
	for i := range config.Tables {
		if config.Tables[i].Name == name {
			return &config.Tables[i], true
		}
	}
	return nil, false
}

// Schemas resolves the schema of every table, in file order.
func (config *Config) Schemas() ([]schema.Schema, error) {
	out := make([]schema.Schema, len(config.Tables))
	for i := range config.Tables {
		s, err := config.Tables[i].Schema()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Schema parses the column types of the table.
func (table *Table) Schema() (schema.Schema, error) {
	fields := make([]schema.Field, len(table.Columns))
	for i, column := range table.Columns {
		dt, err := types.Parse(column.Type)
		if err != nil {
			return schema.Schema{}, errors.Wrapf(err, "couldn't parse type of column '%s' in table '%s'", column.Name, table.Name)
		}
		fields[i] = schema.Field{Name: column.Name, Type: dt}
	}
	out := schema.NewSchema(fields...)
	if err := out.Validate(); err != nil {
		return schema.Schema{}, errors.Wrapf(err, "invalid schema of table '%s'", table.Name)
	}
	return out, nil
}
