package feedback

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type ContactForm struct {
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Topic     string `json:"topic" form:"topic"`
	Message   string `json:"message" form:"message"`
	Agreement bool   `json:"agreement" form:"agreement"`
}

func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(strings.ToLower(f.Email))
	f.Topic = strings.TrimSpace(f.Topic)
	f.Message = strings.TrimSpace(f.Message)
}

func (f ContactForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 100)),
		validation.Field(&f.Email, validation.Required.Error("email is required"), is.EmailFormat),
		validation.Field(&f.Topic, validation.Required, validation.In(
			string(TopicError), string(TopicSuggestion), string(TopicCooperation), string(TopicOther),
		).Error("unknown topic")),
		validation.Field(&f.Message, validation.Required.Error("message is required")),
		validation.Field(&f.Agreement, validation.Required.Error("you must accept the site rules")),
	)
}
