package car

import "errors"

// ErrInvalidCategory reports a categorical attribute outside its enumerated set.
var ErrInvalidCategory = errors.New("invalid category")
