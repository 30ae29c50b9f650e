package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// trainer
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrMissingColumn   = errors.New("dataset missing required column")
	ErrNoTrainingRows  = errors.New("no rows left after cleaning")

	// artifact
	ErrArtifactNotFound     = errors.New("pipeline artifact not found")
	ErrIncompatibleArtifact = errors.New("incompatible pipeline artifact")
	ErrNotFitted            = errors.New("pipeline not fitted")

	// request input
	ErrMissingField = errors.New("missing field")
	ErrInvalidField = errors.New("invalid field")
)
