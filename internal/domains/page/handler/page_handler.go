package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/service"
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	service service.PageService
}

func NewPageHandler(service service.PageService) *PageHandler {
	return &PageHandler{service: service}
}

func listingQuery(c *gin.Context) page.ListingQuery {
	return page.ListingQuery{
		Page:     c.Query("page"),
		Sort:     c.Query("sort"),
		Name:     strings.TrimSpace(c.Query("name")),
		Country:  c.Query("country"),
		Category: c.Query("category"),
	}
}

// render writes data, or maps err to 404/500.
func render(c *gin.Context, data interface{}, err error) {
	if err != nil {
		if errors.Is(err, page.ErrNotFound) {
			response.NotFound(c, "page not found")
			return
		}
		logger.ErrorWithFields("page build failed", err, map[string]interface{}{"path": c.Request.URL.Path})
		response.InternalServerError(c, "failed to build page")
		return
	}
	response.Success(c, http.StatusOK, data)
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	data, err := h.service.Home(c.Request.Context())
	render(c, data, err)
}

// Star handles GET /person/:slug/
func (h *PageHandler) Star(c *gin.Context) {
	data, err := h.service.Star(c.Request.Context(), c.Param("slug"))
	render(c, data, err)
}

// Country handles GET /country/:slug/
func (h *PageHandler) Country(c *gin.Context) {
	data, err := h.service.Country(c.Request.Context(), c.Param("slug"), listingQuery(c))
	render(c, data, err)
}

// Category handles GET /industry/:slug/
func (h *PageHandler) Category(c *gin.Context) {
	data, err := h.service.Category(c.Request.Context(), c.Param("slug"), listingQuery(c))
	render(c, data, err)
}

// Tag handles GET /tag/:tag/
func (h *PageHandler) Tag(c *gin.Context) {
	data, err := h.service.Tag(c.Request.Context(), c.Param("tag"), listingQuery(c))
	render(c, data, err)
}

// Celebrities handles GET /celebrities/
func (h *PageHandler) Celebrities(c *gin.Context) {
	data, err := h.service.Celebrities(c.Request.Context(), listingQuery(c))
	render(c, data, err)
}

// Search handles GET /search/
func (h *PageHandler) Search(c *gin.Context) {
	data, err := h.service.Search(c.Request.Context(), page.SearchQuery{
		Q:        c.Query("q"),
		Country:  c.Query("country"),
		Category: c.Query("category"),
		Page:     c.Query("page"),
	})
	render(c, data, err)
}

// Birthday handles GET /birthday/:date/ where date is {month}-{day}.
func (h *PageHandler) Birthday(c *gin.Context) {
	month, day, ok := parseMonthDay(c.Param("date"))
	if !ok {
		response.NotFound(c, "invalid date")
		return
	}
	data, err := h.service.Birthday(c.Request.Context(), month, day, c.Query("year"), c.Query("page"))
	render(c, data, err)
}

func parseMonthDay(raw string) (int, int, bool) {
	m, d, found := strings.Cut(raw, "-")
	if !found {
		return 0, 0, false
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, false
	}
	day, err := strconv.Atoi(d)
	if err != nil {
		return 0, 0, false
	}
	return month, day, true
}

// Dates handles GET /dates/
func (h *PageHandler) Dates(c *gin.Context) {
	data, err := h.service.Dates(c.Request.Context())
	render(c, data, err)
}

// Names handles GET /names/
func (h *PageHandler) Names(c *gin.Context) {
	data, err := h.service.Names(c.Request.Context())
	render(c, data, err)
}

// NamesLetter handles GET /names/:letter/
func (h *PageHandler) NamesLetter(c *gin.Context) {
	data, err := h.service.NamesLetter(c.Request.Context(), c.Param("letter"), c.Query("page"))
	render(c, data, err)
}

// About handles GET /about/
func (h *PageHandler) About(c *gin.Context) {
	data, err := h.service.About(c.Request.Context())
	render(c, data, err)
}

// Rules handles GET /rules/
func (h *PageHandler) Rules(c *gin.Context) {
	data, err := h.service.Rules(c.Request.Context())
	render(c, data, err)
}
