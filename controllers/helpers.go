package controllers

import (
	"fmt"
	"strconv"
	"time"

	"riise-api/models"

	"github.com/gin-gonic/gin"
)

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case uint:
			return t, true
		case int:
			if t > 0 {
				return uint(t), true
			}
		case int64:
			if t > 0 {
				return uint(t), true
			}
		case string:
			if id64, err := strconv.ParseUint(t, 10, 64); err == nil && id64 > 0 {
				return uint(id64), true
			}
		}
	}
	return 0, false
}

func getRoleFromContext(c *gin.Context) (models.Role, bool) {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(models.Role); ok {
			return role, true
		}
	}
	return "", false
}

// parseDate parses an optional YYYY-MM-DD request field.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, nil
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}
