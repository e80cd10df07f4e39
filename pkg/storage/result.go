// File: pkg/storage/result.go
package storage

import "ossgate/internal/errs"

// Result is the uniform envelope every outer surface returns.
// When Success is true, Error and Kind are empty.
type Result[T any] struct {
	Success bool   `json:"success" yaml:"success"`
	Data    *T     `json:"data,omitempty" yaml:"data,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Wraps a core outcome into the envelope; a non-nil err always yields Success=false
func Envelope[T any](data T, err error, message string) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Result[T]{Success: true, Data: &data, Message: message}
}

func Failure[T any](err error) Result[T] {
	return Result[T]{
		Success: false,
		Error:   err.Error(),
		Kind:    errs.KindOf(err).String(),
	}
}
