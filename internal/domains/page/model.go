// Package page assembles the JSON contexts served by the public site.
package page

import (
	"errors"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/feedback"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/shared/pagination"
	"borntoday-backend/internal/shared/utils"
)

var ErrNotFound = errors.New("page not found")

const (
	ListingPerPage     = 20
	NamesLetterPerPage = 200
	HomeTodayLimit     = 12
	HomeTomorrowLimit  = 8
	NamesPreviewLimit  = 20
	SidebarLimit       = 20
	RelatedLimit       = 10
	ViableTagLimit     = 10
)

// ListingQuery carries the raw query parameters of a filtered listing.
type ListingQuery struct {
	Page     string
	Sort     string
	Name     string
	Country  string
	Category string
}

// SearchQuery carries the raw query parameters of /search/.
type SearchQuery struct {
	Q        string
	Country  string
	Category string
	Page     string
}

type SiteStats struct {
	StarCount     int64 `json:"star_count"`
	BirthdayCount int64 `json:"birthday_count"`
}

// NavDates are the quick links around today shown on calendar pages.
type NavDates struct {
	Today              string `json:"today"`
	Yesterday          string `json:"yesterday"`
	DayBeforeYesterday string `json:"day_before_yesterday"`
	Tomorrow           string `json:"tomorrow"`
	DayAfterTomorrow   string `json:"day_after_tomorrow"`
}

type HomePage struct {
	Title         string       `json:"title"`
	TodayDate     string       `json:"today_date"`
	TomorrowDate  string       `json:"tomorrow_date"`
	TodayStars    []model.Card `json:"today_stars"`
	TomorrowStars []model.Card `json:"tomorrow_stars"`
	TodayCount    int64        `json:"today_count"`
	TomorrowCount int64        `json:"tomorrow_count"`
	Stats         *SiteStats   `json:"stats,omitempty"`
}

// TagBlock previews a virtual tag on a person page.
type TagBlock struct {
	Slug  string       `json:"slug"`
	Title string       `json:"title"`
	Count int64        `json:"count"`
	Stars []model.Card `json:"stars"`
}

type StarPage struct {
	Title         string              `json:"title"`
	Star          model.Detail        `json:"star"`
	PopularTags   []TagBlock          `json:"popular_tag_blocks"`
	AllCountries  []country.View      `json:"countries"`
	AllCategories []category.Category `json:"categories"`
}

// TagLink points at a viable virtual tag page.
type TagLink struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Listing is the paginated part shared by every star listing.
type Listing struct {
	Stars      []model.Card    `json:"stars"`
	Pagination pagination.Page `json:"pagination"`
	Sort       string          `json:"sort_by,omitempty"`
}

// Filters echoes the active filter values and the choices for the filter form.
type Filters struct {
	Name          string              `json:"name_filter"`
	Country       string              `json:"country_filter"`
	Category      string              `json:"category_filter"`
	AllCountries  []country.View      `json:"all_countries"`
	AllCategories []category.Category `json:"all_categories"`
}

type CountryPage struct {
	Title         string              `json:"title"`
	Country       country.View        `json:"country"`
	ViableTags    []TagLink           `json:"viable_tags"`
	TopCountries  []country.WithCount `json:"top_countries"`
	TopCategories []TagLink           `json:"top_categories"`
	Listing
	Filters
}

type CategoryPage struct {
	Title         string               `json:"title"`
	Category      category.Category    `json:"category"`
	ViableTags    []TagLink            `json:"viable_tags"`
	TopCountries  []TagLink            `json:"top_countries"`
	TopCategories []category.WithCount `json:"top_categories"`
	Listing
	Filters
}

type TagPage struct {
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Country       country.View         `json:"country"`
	Category      category.Category    `json:"category"`
	TopCountries  []country.WithCount  `json:"top_countries"`
	TopCategories []category.WithCount `json:"top_categories"`
	Listing
	AllCountries  []country.View      `json:"all_countries"`
	AllCategories []category.Category `json:"all_categories"`
}

type CelebritiesPage struct {
	Title         string               `json:"title"`
	TopCountries  []country.WithCount  `json:"top_countries"`
	TopCategories []category.WithCount `json:"top_categories"`
	Listing
	Filters
}

type SearchPage struct {
	Title         string               `json:"title"`
	Query         string               `json:"query"`
	TopCountries  []country.WithCount  `json:"top_countries"`
	TopCategories []category.WithCount `json:"top_categories"`
	Listing
	Filters
}

type BirthdayPage struct {
	Title         string                `json:"title"`
	Month         int                   `json:"month"`
	Day           int                   `json:"day"`
	YearFilter    int                   `json:"year_filter,omitempty"`
	Nav           NavDates              `json:"nav"`
	CalendarWeeks [][]utils.CalendarDay `json:"calendar_weeks"`
	Listing
}

type MonthGrid struct {
	Number int                   `json:"number"`
	Name   string                `json:"name"`
	Weeks  [][]utils.CalendarDay `json:"weeks"`
}

type DatesPage struct {
	Title  string      `json:"title"`
	Year   int         `json:"year"`
	Nav    NavDates    `json:"nav"`
	Months []MonthGrid `json:"months"`
}

type LetterGroup struct {
	Letter string       `json:"letter"`
	Stars  []model.Card `json:"stars"`
}

type NamesPage struct {
	Title   string        `json:"title"`
	Letters []LetterGroup `json:"letters"`
}

type NamesLetterPage struct {
	Title  string `json:"title"`
	Letter string `json:"letter"`
	Listing
}

type AboutPage struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Topics      []feedback.TopicOption `json:"topics"`
	StarCount   int64                  `json:"star_count"`
}

type RulesPage struct {
	Title string `json:"title"`
}
