package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/banshee-data/seriesprep/series"
)

// DefaultConfigPath is the path to the canonical slicing defaults file.
const DefaultConfigPath = "config/slicing.defaults.json"

// SlicingConfig is the JSON form of series.Options plus the diagnostics
// switch. Omitted fields fall back to the defaults in the Get* methods.
type SlicingConfig struct {
	SeriesTypes3D []string `json:"series_types_3d,omitempty"`

	XFormatterKey *string `json:"x_formatter_key,omitempty"`
	YFormatterKey *string `json:"y_formatter_key,omitempty"`
	ZFormatterKey *string `json:"z_formatter_key,omitempty"`

	LogLossyConversions *bool `json:"log_lossy_conversions,omitempty"`
}

// reservedKeys are written by the slicer itself and cannot hold formatters.
var reservedKeys = []string{
	series.KeyX, series.KeyY, series.KeyZ,
	series.KeyFillRange, series.KeyRibbon, series.KeySeriesType,
}

// EmptySlicingConfig returns a SlicingConfig with all fields unset.
func EmptySlicingConfig() *SlicingConfig {
	return &SlicingConfig{}
}

// maxFileSize caps the size of a config file.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// LoadSlicingConfig loads a SlicingConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadSlicingConfig(path string) (*SlicingConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	return ReadSlicingConfig(os.ReadFile, cleanPath)
}

// ReadSlicingConfig loads a SlicingConfig through readFile, so callers with
// their own file access can supply it. The same extension and size rules as
// LoadSlicingConfig apply.
func ReadSlicingConfig(readFile func(name string) ([]byte, error), path string) (*SlicingConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := readFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", len(data), maxFileSize)
	}

	cfg := EmptySlicingConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *SlicingConfig) Validate() error {
	for i, st := range c.SeriesTypes3D {
		if st == "" {
			return fmt.Errorf("series_types_3d[%d] must not be empty", i)
		}
	}

	keys := []string{c.GetXFormatterKey(), c.GetYFormatterKey(), c.GetZFormatterKey()}
	for i, k := range keys {
		name := string(rune('x'+i)) + "_formatter_key"
		if k == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		if slices.Contains(reservedKeys, k) {
			return fmt.Errorf("%s %q collides with a reserved attribute", name, k)
		}
		if slices.Index(keys, k) != i {
			return fmt.Errorf("%s %q is used for more than one axis", name, k)
		}
	}

	return nil
}

// GetSeriesTypes3D returns the 3D series types or the package defaults.
func (c *SlicingConfig) GetSeriesTypes3D() []string {
	if len(c.SeriesTypes3D) == 0 {
		return slices.Clone(series.DefaultSeriesTypes3D)
	}
	return slices.Clone(c.SeriesTypes3D)
}

// GetXFormatterKey returns the x formatter key or the default.
func (c *SlicingConfig) GetXFormatterKey() string {
	if c.XFormatterKey == nil {
		return series.KeyXFormatter
	}
	return *c.XFormatterKey
}

// GetYFormatterKey returns the y formatter key or the default.
func (c *SlicingConfig) GetYFormatterKey() string {
	if c.YFormatterKey == nil {
		return series.KeyYFormatter
	}
	return *c.YFormatterKey
}

// GetZFormatterKey returns the z formatter key or the default.
func (c *SlicingConfig) GetZFormatterKey() string {
	if c.ZFormatterKey == nil {
		return series.KeyZFormatter
	}
	return *c.ZFormatterKey
}

// GetLogLossyConversions returns the log_lossy_conversions value or the default.
func (c *SlicingConfig) GetLogLossyConversions() bool {
	if c.LogLossyConversions == nil {
		return true
	}
	return *c.LogLossyConversions
}

// Options converts the configuration into series.Options.
func (c *SlicingConfig) Options() series.Options {
	return series.Options{
		SeriesTypes3D: c.GetSeriesTypes3D(),
		XFormatterKey: c.GetXFormatterKey(),
		YFormatterKey: c.GetYFormatterKey(),
		ZFormatterKey: c.GetZFormatterKey(),
	}
}
