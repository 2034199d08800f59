package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"riise-api/services"

	"github.com/gin-gonic/gin"
)

func writePDF(c *gin.Context, result *services.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

func writeExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrNoUsers):
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
	}
}

// ExportOwnData returns the caller's progress report as a PDF.
func ExportOwnData(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	svc := services.NewExportService(nil)
	result, err := svc.ExportSelf(userID)
	if err != nil {
		writeExportError(c, err)
		return
	}
	writePDF(c, result)
}

// ExportUserData returns the report for the user with the given email.
// Admin only (enforced in routes).
func ExportUserData(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	svc := services.NewExportService(nil)
	result, err := svc.ExportUser(email)
	if err != nil {
		writeExportError(c, err)
		return
	}
	writePDF(c, result)
}

// ExportAllUsersData returns the fleet-wide report covering every
// non-admin user. Admin only (enforced in routes).
func ExportAllUsersData(c *gin.Context) {
	svc := services.NewExportService(nil)
	result, err := svc.ExportAll()
	if err != nil {
		writeExportError(c, err)
		return
	}
	writePDF(c, result)
}
