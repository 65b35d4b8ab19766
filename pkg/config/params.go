package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"drainroute/pkg/fault"
)

// Parameters tune the multi-source corridor splitting heuristics. Values
// are millimetres.
type Parameters struct {
	// MinSourceDistanceToSeparate is the minimum gap between adjacent
	// source entry coordinates for a cut between them to be considered.
	MinSourceDistanceToSeparate float64 `yaml:"minSourceDistanceToSeparate"`
	// MaxNodeWidthToSeparate caps the length of the cut: a node is only
	// split when its extent perpendicular to the cut axis is at most this.
	MaxNodeWidthToSeparate float64 `yaml:"maxNodeWidthToSeparate"`
}

// DefaultParameters returns the stock tuning.
func DefaultParameters() Parameters {
	return Parameters{
		MinSourceDistanceToSeparate: 150,
		MaxNodeWidthToSeparate:      150,
	}
}

// LoadParameters reads the optional YAML override file. A missing file
// yields the defaults.
func LoadParameters(path string) (Parameters, error) {
	p := DefaultParameters()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fault.Parsef("cannot read %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fault.Parsef("cannot parse %s: %v", path, err)
	}
	if p.MinSourceDistanceToSeparate <= 0 || p.MaxNodeWidthToSeparate <= 0 {
		return p, fault.Validationf("%s: separation parameters must be positive", path)
	}
	return p, nil
}
