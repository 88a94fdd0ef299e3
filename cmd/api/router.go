package main

import (
	"net/http"
	"time"

	"borntoday-backend/internal/shared/middleware"
	"borntoday-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger(),
		middleware.Metrics(),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupPageRoutes(router, c)
	setupFormRoutes(router, c)
	setupSitemapRoutes(router, c)
	setupAdminRoutes(router, c)

	return router
}

// ========================================
// PUBLIC PAGES
// ========================================
func setupPageRoutes(r *gin.Engine, c *container.Container) {
	h := c.PageHandler

	r.GET("/", h.Home)
	r.GET("/person/:slug/", h.Star)
	r.GET("/country/:slug/", h.Country)
	r.GET("/industry/:slug/", h.Category)
	r.GET("/tag/:tag/", h.Tag)
	r.GET("/birthday/:date/", h.Birthday)
	r.GET("/dates/", h.Dates)
	r.GET("/celebrities/", h.Celebrities)
	r.GET("/search/", h.Search)
	r.GET("/names/", h.Names)
	r.GET("/names/:letter/", h.NamesLetter)
	r.GET("/about/", h.About)
	r.GET("/rules/", h.Rules)
}

// ========================================
// FORMS
// ========================================
func setupFormRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/about/", c.FeedbackHandler.Submit)
	r.POST("/add/", c.StarHandler.Submit)
}

// ========================================
// SITEMAPS
// ========================================
func setupSitemapRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/sitemap.xml", c.SitemapHandler.Legacy)
	r.GET("/sitemap-:file", c.SitemapHandler.Sitemap)
	r.GET("/robots.txt", c.SitemapHandler.Robots)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/admin/login", c.AdminHandler.Login)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/stars", c.StarHandler.Create)
		admin.PATCH("/stars/:id/publish", c.StarHandler.Publish)
		admin.PATCH("/stars/:id/unpublish", c.StarHandler.Unpublish)

		admin.GET("/countries", c.CountryHandler.List)
		admin.POST("/countries", c.CountryHandler.Create)
		admin.GET("/categories", c.CategoryHandler.List)
		admin.POST("/categories", c.CategoryHandler.Create)

		admin.POST("/cache/clear", c.AdminHandler.ClearCache)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbErr, cacheErr := appCtx.HealthCheck(c.Request.Context())

		status, dbStatus, cacheStatus := "ok", "ok", "ok"
		if cacheErr != nil {
			status, cacheStatus = "degraded", "error: "+cacheErr.Error()
		}
		statusCode := http.StatusOK
		if dbErr != nil {
			status, dbStatus = "down", "error: "+dbErr.Error()
			statusCode = http.StatusServiceUnavailable
		}

		version := ""
		if appCtx.Config != nil {
			version = appCtx.Config.App.Version
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
			},
		})
	}
}
