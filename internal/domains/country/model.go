package country

import (
	"time"

	"github.com/google/uuid"
)

// Country is a nationality a star can be linked to.
//
// NameGenitive holds the genitive-case form used in phrases such as
// "Знаменитости из Франции". It is optional and filled by the spreadsheet import.
type Country struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	NameGenitive string    `json:"name_genitive,omitempty"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
}

// View is the read-only projection used by page contexts.
type View struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Slug        string `json:"slug"`
}

func (c Country) View() View {
	display := c.NameGenitive
	if display == "" {
		display = c.Name
	}
	return View{Name: c.Name, DisplayName: display, Slug: c.Slug}
}

func Views(countries []Country) []View {
	out := make([]View, len(countries))
	for i, c := range countries {
		out[i] = c.View()
	}
	return out
}

// WithCount pairs a country with its number of published stars.
type WithCount struct {
	Country
	StarCount int64 `json:"star_count"`
}
