// Package config holds the model configuration and the tunable
// optimization parameters.
package config

import (
	"drainroute/pkg/fault"
	"drainroute/pkg/tabular"
)

// Config holds the model parameters loaded from config.csv.
type Config struct {
	// MinSlopeAngleSin is the sine of the minimum allowed slope of a pipe
	// against the horizontal plane. The sheet states it as millimetres of
	// drop per metre of run; the loader divides by 1000.
	MinSlopeAngleSin float64
}

// Load reads the single-row configuration sheet.
func Load(path string) (Config, error) {
	var cfg Config
	rows := 0
	err := tabular.ForEach(path, func(r *tabular.Row) error {
		rows++
		if rows > 1 {
			return r.Failf("minDeltaZ", "expected a single configuration row")
		}
		minDeltaZ, err := r.TakeFloat("minDeltaZ")
		if err != nil {
			return err
		}
		if minDeltaZ <= 0 || minDeltaZ > 100 {
			return r.Failf("minDeltaZ", "minimum slope must be in (0, 100] mm/m, got %g", minDeltaZ)
		}
		cfg.MinSlopeAngleSin = minDeltaZ / 1000
		return nil
	})
	if err != nil {
		return Config{}, err
	}
	if rows == 0 {
		return Config{}, fault.Parsef("%s: no configuration row", path)
	}
	return cfg, nil
}
