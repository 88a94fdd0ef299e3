package handler

import (
	"errors"
	"net/http"

	"borntoday-backend/internal/domains/feedback"
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type FeedbackHandler struct {
	service feedback.Service
}

func NewFeedbackHandler(service feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /about/
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var form feedback.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		response.BindFailed(c, err)
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), form)
	if err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			response.ValidationFailed(c, err)
			return
		}
		logger.Error("save feedback failed", err)
		response.InternalServerError(c, "failed to send message")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": msg.ID})
}
