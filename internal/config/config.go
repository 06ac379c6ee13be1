// Package config loads affine bijector descriptions from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/born/tensor"
	"gopkg.in/yaml.v3"
)

// Supported backends.
const (
	BackendCPU    = "cpu"
	BackendWebGPU = "webgpu"
)

// Common errors.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidValues = errors.New("invalid values")
)

// Config describes an affine scalar bijector and where to evaluate it.
//
// Example:
//
//	name: standardize
//	dtype: float64
//	backend: cpu
//	validate_args: true
//	shift: [1, 2, 3]
//	scale: 2
type Config struct {
	Name         string  `yaml:"name"`
	DType        string  `yaml:"dtype"`   // float32 (default) or float64
	Backend      string  `yaml:"backend"` // cpu (default) or webgpu
	ValidateArgs bool    `yaml:"validate_args"`
	Shift        *Values `yaml:"shift"`
	Scale        *Values `yaml:"scale"`
}

// Default returns a config for the identity bijector on the CPU backend.
func Default() *Config {
	return &Config{
		DType:   "float32",
		Backend: BackendCPU,
	}
}

// Load reads a YAML config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks dtype and backend names.
func (c *Config) Validate() error {
	if _, err := c.DataType(); err != nil {
		return err
	}
	switch c.Backend {
	case BackendCPU, BackendWebGPU:
	default:
		return fmt.Errorf("%w: unknown backend %q (want %s or %s)", ErrInvalidConfig, c.Backend, BackendCPU, BackendWebGPU)
	}
	return nil
}

// DataType returns the tensor data type named by DType.
func (c *Config) DataType() (tensor.DataType, error) {
	switch strings.ToLower(c.DType) {
	case "", "float32", "f32":
		return tensor.Float32, nil
	case "float64", "f64":
		return tensor.Float64, nil
	default:
		return 0, fmt.Errorf("%w: unsupported dtype %q (want float32 or float64)", ErrInvalidConfig, c.DType)
	}
}

// Values is a scalar or a 1-D list of numbers.
type Values struct {
	Data   []float64
	Scalar bool // Shape [] instead of [len(Data)]
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidValues, node.Line, err)
		}
		*v = Values{Data: []float64{f}, Scalar: true}
	case yaml.SequenceNode:
		var data []float64
		if err := node.Decode(&data); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidValues, node.Line, err)
		}
		if len(data) == 0 {
			return fmt.Errorf("%w: line %d: empty list", ErrInvalidValues, node.Line)
		}
		*v = Values{Data: data}
	default:
		return fmt.Errorf("%w: line %d: want a number or a list of numbers", ErrInvalidValues, node.Line)
	}
	return nil
}

// Shape returns [] for a scalar and [n] for a list.
func (v *Values) Shape() tensor.Shape {
	if v.Scalar {
		return tensor.Shape{}
	}
	return tensor.Shape{len(v.Data)}
}

// ParseValues parses "2", "1,2,3" or "[1, 2, 3]".
// A bare number is a scalar; a bracketed or comma-separated form is a list.
func ParseValues(s string) (*Values, error) {
	s = strings.TrimSpace(s)
	list := strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
	if list {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidValues)
	}

	parts := strings.Split(s, ",")
	data := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidValues, p, err)
		}
		data = append(data, f)
	}
	return &Values{Data: data, Scalar: !list && len(data) == 1}, nil
}
