package country

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCountryRequest struct {
	Name         string `json:"name"`
	NameGenitive string `json:"name_genitive"`
}

func (r *CreateCountryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.NameGenitive = strings.TrimSpace(r.NameGenitive)
}

func (r CreateCountryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 100)),
		validation.Field(&r.NameGenitive, validation.RuneLength(0, 100)),
	)
}
