package fractal

import "errors"

// ErrInvalidParameters is returned for a configuration with missing,
// unknown or non-numeric fields. The render list is never modified.
var ErrInvalidParameters = errors.New("invalid parameters")
