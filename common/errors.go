package common

import "errors"

var (
	ErrorInvalidValue   = errors.New("invalid value")
	ErrorNotImplemented = errors.New("not implemented")
	ErrorNoData         = errors.New("no data")
	ErrorUnitMismatch   = errors.New("unit mismatch")
	ErrorTimeMismatch   = errors.New("time axis mismatch")
	ErrorMissingTimes   = errors.New("missing timepoints")
	ErrorDuplicateData  = errors.New("duplicate data")
)
