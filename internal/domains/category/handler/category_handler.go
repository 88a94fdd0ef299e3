package handler

import (
	"errors"
	"net/http"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create handles POST /admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var fieldErrs validation.Errors
		switch {
		case errors.As(err, &fieldErrs):
			response.ValidationFailed(c, err)
		case errors.Is(err, category.ErrDuplicateSlug), errors.Is(err, category.ErrDuplicateTitle):
			response.Conflict(c, err.Error())
		default:
			logger.Error("create category failed", err)
			response.InternalServerError(c, "failed to create category")
		}
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List handles GET /admin/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("list categories failed", err)
		response.InternalServerError(c, "failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}
