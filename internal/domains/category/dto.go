package category

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCategoryRequest struct {
	Title string `json:"title"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.RuneLength(1, 100)),
	)
}
