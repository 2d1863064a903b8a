package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wandaazhar007/backend-kansha-2026/internal/store"
	"github.com/wandaazhar007/backend-kansha-2026/internal/validation"
)

// Controller handles service-level HTTP requests.
type Controller struct {
	serviceName string
}

// New creates a new Controller.
func New() *Controller {
	return &Controller{serviceName: "BACKEND-KANSHA"}
}

// Health handles the HTTP GET request for the health check endpoint.
func (con *Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": con.serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// bindBody decodes the JSON request body into a field map so that the
// presence of each field can be inspected independently. A missing body
// is treated as an empty field map.
func bindBody(c *gin.Context) (map[string]any, bool) {
	body := map[string]any{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return body, true
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return nil, false
	}
	return body, true
}

// requestInput assembles the validation input from the in-flight request.
func requestInput(c *gin.Context, body map[string]any) validation.Input {
	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	return validation.Input{
		Params: params,
		Query:  c.Request.URL.Query(),
		Body:   body,
	}
}

// validate evaluates the rule set and writes the 422 response when any
// rule is violated. Validation runs strictly before any store access.
func validate(c *gin.Context, in validation.Input, rules []*validation.Rule) bool {
	errs := validation.Evaluate(in, rules)
	if len(errs) == 0 {
		return true
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "Validation failed",
		"details": errs,
	})
	return false
}

// respondStoreError maps a store failure onto the HTTP boundary: absent
// documents become 404, anything else is logged and reported generically.
func respondStoreError(c *gin.Context, err error, resource string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return
	}
	slog.Error("document store call failed",
		slog.Any("err", err),
		slog.String("resource", resource),
		slog.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// matchesSearch reports whether either field contains the search term,
// case-insensitively. An empty field never matches.
func matchesSearch(name, description, term string) bool {
	lower := strings.ToLower(term)
	if name != "" && strings.Contains(strings.ToLower(name), lower) {
		return true
	}
	if description != "" && strings.Contains(strings.ToLower(description), lower) {
		return true
	}
	return false
}
