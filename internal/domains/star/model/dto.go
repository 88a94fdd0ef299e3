package model

import (
	"errors"
	"strings"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const dateLayout = "2006-01-02"

// Card is the listing projection of a star.
type Card struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	BirthDate  string `json:"birth_date"`
	YearsRange string `json:"years_range"`
	Age        int    `json:"age"`
	IsAlive    bool   `json:"is_alive"`
	Rating     int    `json:"rating"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

// ToCard projects s; photoURL maps a stored key to a public URL.
func (s *Star) ToCard(today time.Time, photoURL func(key string) string) Card {
	card := Card{
		Name:       s.Name,
		Slug:       s.Slug,
		BirthDate:  s.BirthDate.Format(dateLayout),
		YearsRange: s.YearsRange(),
		Age:        s.Age(today),
		IsAlive:    s.IsAlive(),
		Rating:     s.Rating,
	}
	if s.PhotoKey != nil && photoURL != nil {
		card.PhotoURL = photoURL(*s.PhotoKey)
	}
	return card
}

func ToCards(stars []Star, today time.Time, photoURL func(key string) string) []Card {
	cards := make([]Card, len(stars))
	for i := range stars {
		cards[i] = stars[i].ToCard(today, photoURL)
	}
	return cards
}

// Detail is the full person page projection.
type Detail struct {
	Card
	DeathDate  string              `json:"death_date,omitempty"`
	Content    string              `json:"content"`
	Wikipedia  string              `json:"wikipedia,omitempty"`
	RuWiki     string              `json:"ruwiki,omitempty"`
	Countries  []country.View      `json:"countries"`
	Categories []category.Category `json:"categories"`
}

func (s *Star) ToDetail(today time.Time, photoURL func(key string) string) Detail {
	d := Detail{
		Card:       s.ToCard(today, photoURL),
		Content:    s.Content,
		Countries:  country.Views(s.Countries),
		Categories: s.Categories,
	}
	if s.DeathDate != nil {
		d.DeathDate = s.DeathDate.Format(dateLayout)
	}
	if s.Wikipedia != nil {
		d.Wikipedia = *s.Wikipedia
	}
	if s.RuWiki != nil {
		d.RuWiki = *s.RuWiki
	}
	if d.Categories == nil {
		d.Categories = []category.Category{}
	}
	return d
}

// StarForm is the payload of the public submission form and the admin create call.
// Rating is only read from JSON; the public service drops it.
type StarForm struct {
	Name       string   `json:"name" form:"name"`
	BirthDate  string   `json:"birth_date" form:"birth_date"`
	DeathDate  string   `json:"death_date" form:"death_date"`
	Content    string   `json:"content" form:"content"`
	Countries  []string `json:"countries" form:"countries[]"`
	Categories []string `json:"categories" form:"categories[]"`
	Wikipedia  string   `json:"wikipedia" form:"wikipedia"`
	RuWiki     string   `json:"ruwiki" form:"ruwiki"`
	Rating     int      `json:"rating" form:"-"`
}

func (f *StarForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.BirthDate = strings.TrimSpace(f.BirthDate)
	f.DeathDate = strings.TrimSpace(f.DeathDate)
	f.Content = strings.TrimSpace(f.Content)
	f.Wikipedia = strings.TrimSpace(f.Wikipedia)
	f.RuWiki = strings.TrimSpace(f.RuWiki)
	f.Countries = compact(f.Countries)
	f.Categories = compact(f.Categories)
}

func compact(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func (f StarForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.RuneLength(2, 200)),
		validation.Field(&f.BirthDate, validation.Required.Error("birth date is required"), validation.Date(dateLayout)),
		validation.Field(&f.DeathDate, validation.Date(dateLayout), validation.By(f.afterBirth)),
		validation.Field(&f.Content, validation.Required.Error("content is required")),
		validation.Field(&f.Countries, validation.Required.Error("at least one country is required")),
		validation.Field(&f.Categories, validation.Required.Error("at least one category is required")),
		validation.Field(&f.Wikipedia, is.URL),
		validation.Field(&f.RuWiki, is.URL),
		validation.Field(&f.Rating, validation.Min(0)),
	)
}

func (f StarForm) afterBirth(value interface{}) error {
	death, _ := value.(string)
	if death == "" {
		return nil
	}
	b, errB := time.Parse(dateLayout, f.BirthDate)
	d, errD := time.Parse(dateLayout, death)
	if errB != nil || errD != nil {
		return nil
	}
	if d.Before(b) {
		return errors.New("must not be before birth date")
	}
	return nil
}

// Dates parses the validated form dates.
func (f StarForm) Dates() (birth time.Time, death *time.Time, err error) {
	birth, err = time.Parse(dateLayout, f.BirthDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	if f.DeathDate != "" {
		d, err := time.Parse(dateLayout, f.DeathDate)
		if err != nil {
			return time.Time{}, nil, err
		}
		death = &d
	}
	return birth, death, nil
}

func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
