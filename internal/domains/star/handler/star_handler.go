package handler

import (
	"errors"
	"io"
	"net/http"

	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/domains/star/service"
	"borntoday-backend/internal/infrastructure/storage"
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type StarHandler struct {
	service service.StarService
}

func NewStarHandler(service service.StarService) *StarHandler {
	return &StarHandler{service: service}
}

// Submit handles POST /add/ (multipart form or JSON)
func (h *StarHandler) Submit(c *gin.Context) {
	var form model.StarForm
	if err := c.ShouldBind(&form); err != nil {
		response.BindFailed(c, err)
		return
	}

	photo, err := readPhoto(c)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed",
			map[string]string{"photo": err.Error()})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), form, photo)
	if err != nil {
		h.writeError(c, err, "failed to submit star")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"slug":         created.Slug,
		"is_published": created.IsPublished,
	})
}

// Create handles POST /admin/stars
func (h *StarHandler) Create(c *gin.Context) {
	var form model.StarForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BindFailed(c, err)
		return
	}

	created, err := h.service.CreatePublished(c.Request.Context(), form)
	if err != nil {
		h.writeError(c, err, "failed to create star")
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Publish handles PATCH /admin/stars/:id/publish
func (h *StarHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish handles PATCH /admin/stars/:id/unpublish
func (h *StarHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *StarHandler) setPublished(c *gin.Context, published bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid star id")
		return
	}

	star, err := h.service.SetPublished(c.Request.Context(), id, published)
	if err != nil {
		h.writeError(c, err, "failed to update star")
		return
	}
	response.Success(c, http.StatusOK, star)
}

func (h *StarHandler) writeError(c *gin.Context, err error, message string) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationFailed(c, err)
	case errors.Is(err, model.ErrUnknownCountry):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed",
			map[string]string{"countries": err.Error()})
	case errors.Is(err, model.ErrUnknownCategory):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed",
			map[string]string{"categories": err.Error()})
	case errors.Is(err, model.ErrInvalidPhoto):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed",
			map[string]string{"photo": err.Error()})
	case errors.Is(err, model.ErrStarNotFound):
		response.NotFound(c, "star not found")
	case errors.Is(err, model.ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	default:
		logger.Error(message, err)
		response.InternalServerError(c, message)
	}
}

// readPhoto returns nil when the request carries no photo field.
func readPhoto(c *gin.Context) ([]byte, error) {
	if c.ContentType() != "multipart/form-data" {
		return nil, nil
	}
	header, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size > storage.MaxPhotoSize {
		return nil, errors.New("photo must be at most 5MB")
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, storage.MaxPhotoSize+1))
}
