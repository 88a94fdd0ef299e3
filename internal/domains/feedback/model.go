package feedback

import (
	"time"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicError       Topic = "error"
	TopicSuggestion  Topic = "suggestion"
	TopicCooperation Topic = "cooperation"
	TopicOther       Topic = "other"
)

// TopicOption is a selectable topic with its label for the contact form.
type TopicOption struct {
	Value Topic  `json:"value"`
	Label string `json:"label"`
}

// Topics lists the contact form choices in display order.
var Topics = []TopicOption{
	{TopicError, "Сообщить об ошибке"},
	{TopicSuggestion, "Предложение"},
	{TopicCooperation, "Сотрудничество"},
	{TopicOther, "Другое"},
}

// Message is an append-only contact form submission.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Topic     Topic     `json:"topic"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
