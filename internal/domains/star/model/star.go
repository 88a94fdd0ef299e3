package model

import (
	"fmt"
	"strings"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"

	"github.com/google/uuid"
)

// Star is a public figure, published or waiting for moderation.
type Star struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	BirthDate   time.Time  `json:"birth_date"`
	DeathDate   *time.Time `json:"death_date,omitempty"`
	Content     string     `json:"content"`
	PhotoKey    *string    `json:"photo_key,omitempty"`
	Rating      int        `json:"rating"`
	Wikipedia   *string    `json:"wikipedia,omitempty"`
	RuWiki      *string    `json:"ruwiki,omitempty"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Loaded only by single-star lookups.
	Countries  []country.Country   `json:"countries,omitempty"`
	Categories []category.Category `json:"categories,omitempty"`
}

// Age is the age at death, or the current age for living stars.
func (s *Star) Age(today time.Time) int {
	end := today
	if s.DeathDate != nil {
		end = *s.DeathDate
	}
	age := end.Year() - s.BirthDate.Year()
	if end.Month() < s.BirthDate.Month() ||
		(end.Month() == s.BirthDate.Month() && end.Day() < s.BirthDate.Day()) {
		age--
	}
	return age
}

// YearsRange renders "1937" or "1937 - 2011".
func (s *Star) YearsRange() string {
	if s.DeathDate != nil {
		return fmt.Sprintf("%d - %d", s.BirthDate.Year(), s.DeathDate.Year())
	}
	return fmt.Sprint(s.BirthDate.Year())
}

func (s *Star) IsAlive() bool {
	return s.DeathDate == nil
}

func (s *Star) CountrySlugs() []string {
	out := make([]string, len(s.Countries))
	for i, c := range s.Countries {
		out[i] = c.Slug
	}
	return out
}

func (s *Star) CategorySlugs() []string {
	out := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		out[i] = c.Slug
	}
	return out
}

// FirstLetter is the upper-cased first rune of the name, as used by the names index.
func (s *Star) FirstLetter() string {
	for _, r := range s.Name {
		return strings.ToUpper(string(r))
	}
	return ""
}
