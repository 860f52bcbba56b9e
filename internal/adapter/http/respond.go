package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

// writeError maps the use case error taxonomy onto the three-way HTTP
// categorization: unauthorized, client error, server error.
func writeError(c *gin.Context, err error) {
	var invalid *usecase.InvalidRequestError
	var dep *usecase.DependencyError
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, usecase.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Msg})
	case errors.As(err, &dep):
		c.JSON(http.StatusInternalServerError, gin.H{"error": dep.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
