// Package errors provides custom error types for inventory operations.
package errors

import "errors"

// ErrInvalidReference is returned when a product references a category or
// supplier id that does not exist at the time of the call.
var ErrInvalidReference = errors.New("invalid category or supplier reference")
