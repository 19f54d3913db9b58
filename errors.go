package opendot

import "fmt"

// InvalidImageError is returned when an image cannot be used as a pixel
// buffer, most commonly because it has no width or no height.
type InvalidImageError struct {
	Width, Height int
	Reason        string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("opendot: invalid image (%dx%d): %s", e.Width, e.Height, e.Reason)
}

// InvalidConfigurationError is returned by Config.Validate and by anything
// that renders with a config that does not validate. No output is produced.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("opendot: invalid configuration: %s %s", e.Field, e.Reason)
}
