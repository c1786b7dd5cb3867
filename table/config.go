package table

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/soypat/multiwing/wing"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML run configuration file. Fields absent from the
// file keep their wing.DefaultConfig values.
func LoadConfig(path string) (wing.Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return wing.Config{}, err
	}
	defer fp.Close()
	cfg, err := ParseConfig(fp)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML run configuration. Unknown fields are an error.
func ParseConfig(r io.Reader) (wing.Config, error) {
	cfg := wing.DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
