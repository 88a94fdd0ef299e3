package model

import (
	"time"

	"github.com/google/uuid"
)

type SortOption string

const (
	SortRating   SortOption = "rating"
	SortNameAsc  SortOption = "name_asc"
	SortNameDesc SortOption = "name_desc"
	SortBirthday SortOption = "birthday"
)

// ParseSort accepts only the known options; anything else keeps def.
func ParseSort(raw string, def SortOption) SortOption {
	switch SortOption(raw) {
	case SortRating, SortNameAsc, SortNameDesc, SortBirthday:
		return SortOption(raw)
	default:
		return def
	}
}

// Filter selects stars for listings. Zero values mean "no condition".
type Filter struct {
	PublishedOnly bool
	CountryID     *uuid.UUID
	CategoryID    *uuid.UUID

	// NameContains is a case-insensitive substring match.
	NameContains string
	// SearchWords match when any word is a case-insensitive substring of the name.
	SearchWords []string
	// NamePrefix is a case-insensitive prefix match.
	NamePrefix string

	BirthMonth int
	BirthDay   int
	BirthYear  int

	ExcludeIDs []uuid.UUID

	Sort SortOption
	// Today anchors SortBirthday.
	Today time.Time

	Limit  int
	Offset int
}

// TagFilter selects (category, country) pairs with at least MinCount published stars.
type TagFilter struct {
	CountryID  *uuid.UUID
	CategoryID *uuid.UUID
	MinCount   int
	Limit      int
}
