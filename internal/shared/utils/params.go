package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"allaccess/internal/shared/errors"
)

// ParseUintParam parses a numeric ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id", "order_id").
// entityName is used in error messages (e.g., "order", "customer").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}

	return uint(value), nil
}

// ParseUintQuery parses an optional numeric query parameter, returning zero
// when absent.
func ParseUintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}

	return uint(value), nil
}
