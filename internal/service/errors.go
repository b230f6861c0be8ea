package service

import "errors"

var (
	ErrFeatureNotFound = errors.New("feature not found")
	ErrOptionNotFound  = errors.New("a la carte option not found")
	ErrPackageNotFound = errors.New("package not found")
	ErrUnknownIds      = errors.New("unknown ids in layout")
	ErrInvalidRecord   = errors.New("record failed validation")
	ErrEmptyPatch      = errors.New("nothing to update")
)

var ErrAlreadyPromoted = errors.New("feature already has an a la carte option")
