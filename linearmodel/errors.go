package linearmodel

import "errors"

var (
	ErrNoTrainingArray   = errors.New("no training array")
	ErrNoTargetArray     = errors.New("no target array")
	ErrTargetLenMismatch = errors.New("target length does not match training length")
)
