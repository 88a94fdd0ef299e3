package handler

import (
	"context"
	"errors"
	"net/http"

	"borntoday-backend/internal/domains/admin"
	"borntoday-backend/internal/shared/middleware"
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CacheClearer empties the page cache.
type CacheClearer interface {
	ClearAll(ctx context.Context) error
}

type AdminHandler struct {
	auth  admin.AuthService
	cache CacheClearer
}

func NewAdminHandler(auth admin.AuthService, cache CacheClearer) *AdminHandler {
	return &AdminHandler{auth: auth, cache: cache}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		var fieldErrs validation.Errors
		switch {
		case errors.As(err, &fieldErrs):
			response.ValidationFailed(c, err)
		case errors.Is(err, admin.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		default:
			logger.Error("admin login failed", err)
			response.InternalServerError(c, "login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

// ClearCache handles POST /admin/cache/clear
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if err := h.cache.ClearAll(c.Request.Context()); err != nil {
		logger.Error("manual cache clear failed", err)
		response.InternalServerError(c, "failed to clear cache")
		return
	}
	logger.Info("page cache cleared", map[string]interface{}{
		"by": c.GetString(middleware.ContextKeySubject),
	})
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}
