package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSlug    = errors.New("category with this slug already exists")
	ErrDuplicateTitle   = errors.New("category with this title already exists")
)
