package feedback

import "context"

type Service interface {
	// Submit validates and stores a contact form message.
	Submit(ctx context.Context, form ContactForm) (*Message, error)
}
