package country

import "errors"

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrDuplicateSlug   = errors.New("country with this slug already exists")
	ErrDuplicateName   = errors.New("country with this name already exists")
)
