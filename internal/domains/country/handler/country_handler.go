package handler

import (
	"errors"
	"net/http"

	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CountryHandler struct {
	service country.Service
}

func NewCountryHandler(service country.Service) *CountryHandler {
	return &CountryHandler{service: service}
}

// Create handles POST /admin/countries
func (h *CountryHandler) Create(c *gin.Context) {
	var req country.CreateCountryRequest
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
		case errors.Is(err, country.ErrDuplicateSlug), errors.Is(err, country.ErrDuplicateName):
			response.Conflict(c, err.Error())
		default:
			logger.Error("create country failed", err)
			response.InternalServerError(c, "failed to create country")
		}
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List handles GET /admin/countries
func (h *CountryHandler) List(c *gin.Context) {
	countries, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("list countries failed", err)
		response.InternalServerError(c, "failed to list countries")
		return
	}
	response.Success(c, http.StatusOK, countries)
}
