package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ViableTagThreshold is the minimum number of published stars a
// (category, country) pair needs before it gets a page.
const ViableTagThreshold = 10

// TagCount is one (category, country) pair with its published star count.
type TagCount struct {
	CategoryID    uuid.UUID `json:"-"`
	CategorySlug  string    `json:"category_slug"`
	CategoryTitle string    `json:"category_title"`
	CountryID     uuid.UUID `json:"-"`
	CountrySlug   string    `json:"country_slug"`
	CountryName   string    `json:"country_name"`
	CountryGen    string    `json:"country_genitive,omitempty"`
	Count         int64     `json:"count"`
}

func TagSlug(categorySlug, countrySlug string) string {
	return fmt.Sprintf("%s-%s", categorySlug, countrySlug)
}

func (t TagCount) Slug() string {
	return TagSlug(t.CategorySlug, t.CountrySlug)
}

// IsViable applies ViableTagThreshold.
func IsViable(count int64) bool {
	return count >= ViableTagThreshold
}

// MonthDay is a calendar day without a year.
type MonthDay struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}
