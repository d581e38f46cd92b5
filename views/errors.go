package views

import "errors"

// ErrInvalidConfig is returned when a configuration value cannot be parsed.
// Startup should abort rather than run with a half-applied policy.
var ErrInvalidConfig = errors.New("views: invalid configuration")
