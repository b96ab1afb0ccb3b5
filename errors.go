package psort

import "errors"

const Namespace = "psort"

var (
	ErrInvalidConfig  = errors.New(Namespace + ": invalid configuration")
	ErrLengthMismatch = errors.New(Namespace + ": destination length must equal the sum of source lengths")
)
