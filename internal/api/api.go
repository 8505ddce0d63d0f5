// Package api exposes the inspection and extraction pipelines over
// HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/logger"
	"github.com/jonesrussell/pagesense/internal/scraper"
)

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, svc *Service) *gin.Engine {
	if log == nil {
		log = logger.NewNoOp()
	}
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/analyze", handleAnalyze(svc))
	v1.POST("/scrape", handleScrape(svc))

	return router
}

// handleAnalyze runs the full inspection for one page.
func handleAnalyze(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
			return
		}

		report, err := svc.Analyze(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, AnalyzeResponse{
			AnalysisID: uuid.NewString(),
			Report:     report,
		})
	}
}

// handleScrape extracts every item of one detected collection.
func handleScrape(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
			return
		}

		result, err := svc.Scrape(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, ScrapeResponse{
			AnalysisID: uuid.NewString(),
			Result:     result,
		})
	}
}

// writeError maps pipeline errors to HTTP statuses: bad requests are
// the caller's fault, fetch failures are the upstream's, and parse
// failures mean the page content itself could not be processed.
func writeError(c *gin.Context, err error) {
	var fetchErr *FetchError
	var idxErr *scraper.IndexError

	switch {
	case errors.Is(err, ErrNoInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &idxErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	case errors.Is(err, analyzer.ErrEmptyDocument):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
}

// loggingMiddleware logs each HTTP request after it completes.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// corsMiddleware adds CORS headers to allow frontend access.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
