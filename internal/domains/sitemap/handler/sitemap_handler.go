package handler

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"borntoday-backend/internal/domains/sitemap"
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SitemapHandler struct {
	service *sitemap.Service
}

func NewSitemapHandler(service *sitemap.Service) *SitemapHandler {
	return &SitemapHandler{service: service}
}

// Legacy handles GET /sitemap.xml
func (h *SitemapHandler) Legacy(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, "/sitemap-index.xml")
}

// Sitemap handles GET /sitemap-:file where file is "index.xml" or "{section}.xml".
func (h *SitemapHandler) Sitemap(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("file"), ".xml")
	if !ok {
		response.NotFound(c, "sitemap not found")
		return
	}

	var (
		doc interface{}
		err error
	)
	if name == "index" {
		doc, err = h.service.Index(c.Request.Context())
	} else {
		p, _ := strconv.Atoi(c.Query("p"))
		doc, err = h.service.Section(c.Request.Context(), name, p)
	}
	if err != nil {
		if errors.Is(err, sitemap.ErrUnknownSection) {
			response.NotFound(c, "sitemap not found")
			return
		}
		logger.Error("sitemap build failed", err)
		response.InternalServerError(c, "failed to build sitemap")
		return
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		logger.Error("sitemap encode failed", err)
		response.InternalServerError(c, "failed to build sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

// Robots handles GET /robots.txt
func (h *SitemapHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, h.service.Robots())
}
