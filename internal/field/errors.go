package field

import "errors"

// ErrInvalidConfig indicates a configuration that cannot produce a field.
var ErrInvalidConfig = errors.New("field: invalid config")
