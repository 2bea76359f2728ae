package errors

import "errors"

var (
	ErrScreenNotFound = errors.New("screen not found")
	ErrCoinNotFound   = errors.New("coin not found")
)
