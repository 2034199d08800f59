package controllers

import (
	"net/http"
	"time"

	"riise-api/config"
	"riise-api/models"

	"github.com/gin-gonic/gin"
)

var startupUpdatableFields = map[string]bool{
	"name":         true,
	"description":  true,
	"founder":      true,
	"industry":     true,
	"founded_date": true,
	"status":       true,
}

// GetStartups lists startups: admins see all, users see their own.
func GetStartups(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var startups []models.Startup
	q := config.DB.Order("startup_id")
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&startups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch startups"})
		return
	}

	c.JSON(http.StatusOK, startups)
}

type StartupRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Founder     *string `json:"founder"`
	Industry    *string `json:"industry"`
	FoundedDate *string `json:"founded_date"`
	Status      *string `json:"status"`
}

// AddStartup creates a startup owned by the caller.
func AddStartup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	var req StartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foundedDate, err := parseDate(req.FoundedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	startup := models.Startup{
		Name:        req.Name,
		Description: req.Description,
		Founder:     req.Founder,
		Industry:    req.Industry,
		FoundedDate: foundedDate,
		Status:      req.Status,
		CreatedAt:   &now,
		UpdatedAt:   &now,
		UserID:      &userID,
	}
	if err := config.DB.Create(&startup).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create startup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Startup created", "startup_id": startup.StartupID})
}

// UpdateStartup updates whitelisted fields. Owners and admins only.
func UpdateStartup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var startup models.Startup
	if err := config.DB.Where("startup_id = ?", id).First(&startup).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		return
	}
	if role != models.RoleAdmin && (startup.UserID == nil || *startup.UserID != userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for key := range data {
		if !startupUpdatableFields[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Field - Cannot update: " + key})
			return
		}
	}
	data["updated_at"] = time.Now()

	if err := config.DB.Model(&startup).Updates(data).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update startup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Startup updated"})
}

// DeleteStartup removes a startup. Admin only (enforced in routes).
func DeleteStartup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var startup models.Startup
	if err := config.DB.Where("startup_id = ?", id).First(&startup).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		return
	}

	if err := config.DB.Delete(&startup).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete startup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Startup deleted"})
}
