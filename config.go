package opendot

import (
	"fmt"
	"io"
	"io/ioutil"
	"math"

	yaml "gopkg.in/yaml.v2"
)

const (
	DefaultColumns       = 100
	DefaultVerticalScale = 2.0
)

// Config controls a render. The zero value does not validate; start from
// DefaultConfig or NewConfig.
type Config struct {
	MaxColumns    int     // Upper bound on grid width
	VerticalScale float64 // Character cell aspect correction
	Contrast      int     // [-100,100]
	Brightness    int     // [-100,100]
	Charset       Charset
	Invert        bool
	Colored       bool
	Dither        bool // Ignored when Colored is set
	Smoothing     bool
	Resampler     Resampler // Nil means ImagingResampler
}

func DefaultConfig() Config {
	return Config{
		MaxColumns:    DefaultColumns,
		VerticalScale: DefaultVerticalScale,
		Charset:       CharsetStandard,
		Smoothing:     true,
		Resampler:     ImagingResampler{},
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first field that cannot be rendered with.
func (cfg Config) Validate() error {
	switch {
	case len(cfg.Charset) == 0:
		return &InvalidConfigurationError{Field: "charset", Reason: "must not be empty"}
	case cfg.MaxColumns < 1:
		return &InvalidConfigurationError{Field: "columns", Reason: fmt.Sprintf("must be positive, got %d", cfg.MaxColumns)}
	case !(cfg.VerticalScale > 0) || math.IsInf(cfg.VerticalScale, 1):
		return &InvalidConfigurationError{Field: "vertical scale", Reason: fmt.Sprintf("must be positive and finite, got %g", cfg.VerticalScale)}
	case cfg.Contrast < -100 || cfg.Contrast > 100:
		return &InvalidConfigurationError{Field: "contrast", Reason: fmt.Sprintf("must be within [-100,100], got %d", cfg.Contrast)}
	case cfg.Brightness < -100 || cfg.Brightness > 100:
		return &InvalidConfigurationError{Field: "brightness", Reason: fmt.Sprintf("must be within [-100,100], got %d", cfg.Brightness)}
	}
	return nil
}

// preset is the YAML shape of a Config. Pointers distinguish absent keys
// from zero values.
type preset struct {
	Columns       *int     `yaml:"columns"`
	VerticalScale *float64 `yaml:"vertical_scale"`
	Contrast      *int     `yaml:"contrast"`
	Brightness    *int     `yaml:"brightness"`
	Charset       string   `yaml:"charset"`
	Chars         string   `yaml:"chars"`
	Invert        *bool    `yaml:"invert"`
	Color         *bool    `yaml:"color"`
	Dither        *bool    `yaml:"dither"`
	Smoothing     *bool    `yaml:"smoothing"`
	Resampler     string   `yaml:"resampler"`
}

// LoadConfig reads a YAML preset. Keys that are absent keep their
// DefaultConfig value. A custom "chars" palette wins over a named "charset"
// only when it has more than one rune.
//
//	columns: 120
//	vertical_scale: 4
//	charset: blocks
//	dither: true
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("opendot: reading config: %w", err)
	}
	var p preset
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return cfg, fmt.Errorf("opendot: parsing config: %w", err)
	}
	if p.Columns != nil {
		cfg.MaxColumns = *p.Columns
	}
	if p.VerticalScale != nil {
		cfg.VerticalScale = *p.VerticalScale
	}
	if p.Contrast != nil {
		cfg.Contrast = *p.Contrast
	}
	if p.Brightness != nil {
		cfg.Brightness = *p.Brightness
	}
	if p.Charset != "" {
		cs, ok := LookupCharset(p.Charset)
		if !ok {
			return cfg, &InvalidConfigurationError{Field: "charset", Reason: fmt.Sprintf("unknown preset %q", p.Charset)}
		}
		cfg.Charset = cs
	}
	if custom := Charset(p.Chars); len(custom) > 1 {
		cfg.Charset = custom
	}
	if p.Invert != nil {
		cfg.Invert = *p.Invert
	}
	if p.Color != nil {
		cfg.Colored = *p.Color
	}
	if p.Dither != nil {
		cfg.Dither = *p.Dither
	}
	if p.Smoothing != nil {
		cfg.Smoothing = *p.Smoothing
	}
	if p.Resampler != "" {
		rs, ok := LookupResampler(p.Resampler)
		if !ok {
			return cfg, &InvalidConfigurationError{Field: "resampler", Reason: fmt.Sprintf("unknown resampler %q", p.Resampler)}
		}
		cfg.Resampler = rs
	}
	return cfg, cfg.Validate()
}
