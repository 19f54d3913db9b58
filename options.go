package opendot

type Option func(cfg *Config)

// WithColumns sets the upper bound on the grid width.
func WithColumns(cols int) Option {
	return func(cfg *Config) {
		cfg.MaxColumns = cols
	}
}

// WithVerticalScale sets the character aspect correction. Larger values
// produce fewer rows.
func WithVerticalScale(scale float64) Option {
	return func(cfg *Config) {
		cfg.VerticalScale = scale
	}
}

// WithContrast sets contrast in [-100,100].
func WithContrast(contrast int) Option {
	return func(cfg *Config) {
		cfg.Contrast = contrast
	}
}

// WithBrightness sets brightness in [-100,100].
func WithBrightness(brightness int) Option {
	return func(cfg *Config) {
		cfg.Brightness = brightness
	}
}

func WithCharset(cs Charset) Option {
	return func(cfg *Config) {
		cfg.Charset = cs
	}
}

// If used, dark and light ends of the charset are swapped.
func WithInvertedColors() Option {
	return func(cfg *Config) {
		cfg.Invert = true
	}
}

// WithColor pairs every glyph with its sampled color. Colored output is
// never dithered.
func WithColor() Option {
	return func(cfg *Config) {
		cfg.Colored = true
	}
}

// WithDither enables Floyd-Steinberg error diffusion.
func WithDither() Option {
	return func(cfg *Config) {
		cfg.Dither = true
	}
}

func WithSmoothing(smooth bool) Option {
	return func(cfg *Config) {
		cfg.Smoothing = smooth
	}
}

func WithResampler(rs Resampler) Option {
	return func(cfg *Config) {
		cfg.Resampler = rs
	}
}
