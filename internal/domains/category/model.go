package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is an occupation or field ("Actors", "Singers") a star belongs to.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// WithCount pairs a category with its number of published stars.
type WithCount struct {
	Category
	StarCount int64 `json:"star_count"`
}
