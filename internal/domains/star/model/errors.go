package model

import "errors"

var (
	ErrStarNotFound    = errors.New("star not found")
	ErrDuplicateSlug   = errors.New("star with this slug already exists")
	ErrUnknownCountry  = errors.New("unknown country")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidPhoto    = errors.New("invalid photo")
)
