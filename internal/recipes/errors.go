package recipes

import "errors"

var ErrNotFound = errors.New("recipe not found")

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeInternal   = "internal_error"
)
