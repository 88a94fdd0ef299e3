// Package cachekey names every page cache entry and knows which of them a
// data change can affect.
package cachekey

import (
	"fmt"
	"hash/crc32"
	"strings"
	"time"
)

// TTL classes.
const (
	// ShortTTL covers listings that change with the calendar or with new stars.
	ShortTTL = 24 * time.Hour
	// LongTTL covers detail pages, calendar grids and static pages.
	LongTTL = 7 * 24 * time.Hour
)

const (
	SiteStats = "site_stats"
	StarCount = "star_count"
	NamesPage = "names_page"
	AboutPage = "about_page"
	RulesPage = "rules_page"
)

// Variant hashes the filter, sort and page parts of a listing into a short suffix.
func Variant(parts ...string) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE([]byte(strings.Join(parts, "\x1f"))))
}

func Index(month, day int) string {
	return fmt.Sprintf("index_page_%d_%d", month, day)
}

// Birthday keys a birthday listing. year 0 means no year filter.
func Birthday(month, day, year, page int) string {
	y := "any"
	if year > 0 {
		y = fmt.Sprint(year)
	}
	return fmt.Sprintf("birthday_stars_%d_%d_%s_%d", month, day, y, page)
}

func Dates(year int) string {
	return fmt.Sprintf("dates_page_%d", year)
}

func StarDetail(slug string) string {
	return "star_detail_" + slug
}

func Country(slug, variant string) string {
	return fmt.Sprintf("country_%s_%s", slug, variant)
}

func CountryTags(slug string) string {
	return "country_tags_" + slug
}

func Category(slug, variant string) string {
	return fmt.Sprintf("category_%s_%s", slug, variant)
}

func CategoryTags(slug string) string {
	return "category_tags_" + slug
}

func TagViable(categorySlug, countrySlug string) string {
	return fmt.Sprintf("tag_viable_%s_%s", categorySlug, countrySlug)
}

func TagPage(categorySlug, countrySlug, variant string) string {
	return fmt.Sprintf("tag_page_%s-%s_%s", categorySlug, countrySlug, variant)
}

func Celebrities(variant string) string {
	return "celebrities_" + variant
}

func Search(variant string) string {
	return "search_" + variant
}

func NamesLetter(letter string, page int) string {
	return fmt.Sprintf("names_letter_%s_%d", letter, page)
}

func Sitemap(section string, page int) string {
	return fmt.Sprintf("sitemap_%s_%d", section, page)
}
