// Package config loads run configuration from defaults, an optional YAML
// config file, and PLANOPT_-prefixed environment variables, in that
// precedence order.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bakeops/production-plan-optimizer/pkg/solver"
)

// Defaults matching the solver parameters the original planning tool
// shipped with.
const (
	DefaultSolverName       = "cpsat"
	DefaultTimeLimitSeconds = 60.0
	DefaultOptimalityGap    = 0.005
)

// SolverConfig is the recognized solver configuration surface.
type SolverConfig struct {
	Name             string  `mapstructure:"name"`
	TimeLimitSeconds float64 `mapstructure:"timeLimitSeconds"`
	OptimalityGap    float64 `mapstructure:"optimalityGap"`
}

// Config is the full run configuration.
type Config struct {
	Dataset string `mapstructure:"dataset"`

	// Objective is "minimize_cost" or "maximize_output".
	Objective     string `mapstructure:"objective"`
	LimitToDemand bool   `mapstructure:"limitToDemand"`

	Solver SolverConfig `mapstructure:"solver"`

	LogLevel       string `mapstructure:"logLevel"`
	LogDevelopment bool   `mapstructure:"logDevelopment"`

	// MetricsListen, when set, is the address to serve Prometheus
	// metrics on while a solve runs (e.g. ":9090").
	MetricsListen string `mapstructure:"metricsListen"`
}

// Validate rejects values the pipeline cannot act on.
func (c *Config) Validate() error {
	switch c.Objective {
	case "minimize_cost", "maximize_output":
	default:
		return fmt.Errorf("objective must be minimize_cost or maximize_output, got %q", c.Objective)
	}
	if c.Solver.TimeLimitSeconds <= 0 {
		return fmt.Errorf("solver time limit must be positive, got %g", c.Solver.TimeLimitSeconds)
	}
	if c.Solver.OptimalityGap < 0 || c.Solver.OptimalityGap >= 1 {
		return fmt.Errorf("solver optimality gap must be in [0, 1), got %g", c.Solver.OptimalityGap)
	}
	known := false
	for _, name := range solver.Names() {
		if c.Solver.Name == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("solver name must be one of %s, got %q",
			strings.Join(solver.Names(), ", "), c.Solver.Name)
	}
	return nil
}

// NewViper returns a viper instance with the defaults and env binding this
// tool recognizes. The CLI binds its flags on top.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("objective", "minimize_cost")
	v.SetDefault("limitToDemand", false)
	v.SetDefault("solver.name", DefaultSolverName)
	v.SetDefault("solver.timeLimitSeconds", DefaultTimeLimitSeconds)
	v.SetDefault("solver.optimalityGap", DefaultOptimalityGap)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logDevelopment", false)

	v.SetEnvPrefix("PLANOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into a validated Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
