package lapse

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk YAML layout of a lapse-rate table:
//
//	log_temperature: [ ... ]        # log10 K, strictly increasing
//	log_pressure:    [ ... ]        # log10 bar, strictly increasing
//	gradient:        [[ ... ], ...] # rows per temperature node
//	log_cp:          [[ ... ], ...] # log10 heat capacity, same shape
type tableFile struct {
	LogTemperature []float64   `yaml:"log_temperature"`
	LogPressure    []float64   `yaml:"log_pressure"`
	Gradient       [][]float64 `yaml:"gradient"`
	LogCp          [][]float64 `yaml:"log_cp"`
}

// LoadTable reads a YAML lapse-rate table from r and validates it.
// The shipped grid is 53 temperature × 26 pressure nodes, but any
// rectangular grid with strictly increasing log-space axes is accepted.
func LoadTable(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lapse: read table: %w", err)
	}

	return ParseTable(raw)
}

// ParseTable builds a Table from YAML bytes. See LoadTable for the layout.
func ParseTable(data []byte) (*Table, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("lapse: parse table: %w", err)
	}

	return NewTable(tf.LogTemperature, tf.LogPressure, tf.Gradient, tf.LogCp)
}
