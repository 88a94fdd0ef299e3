package service

import (
	"context"
	"time"

	"borntoday-backend/internal/domains/feedback"
	"borntoday-backend/internal/shared/middleware"
	"borntoday-backend/pkg/logger"

	"github.com/google/uuid"
)

type feedbackService struct {
	repo feedback.Repository
}

func NewFeedbackService(repo feedback.Repository) feedback.Service {
	return &feedbackService{repo: repo}
}

func (s *feedbackService) Submit(ctx context.Context, form feedback.ContactForm) (*feedback.Message, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	m := &feedback.Message{
		ID:        uuid.New(),
		Name:      form.Name,
		Email:     form.Email,
		Topic:     feedback.Topic(form.Topic),
		Message:   form.Message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("feedback received", map[string]interface{}{
		"topic": form.Topic,
		"ip":    middleware.ClientIPFromContext(ctx),
	})
	return m, nil
}
