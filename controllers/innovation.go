package controllers

import (
	"net/http"
	"time"

	"riise-api/config"
	"riise-api/models"

	"github.com/gin-gonic/gin"
)

var innovationUpdatableFields = map[string]bool{
	"title":        true,
	"description":  true,
	"domain":       true,
	"level":        true,
	"status":       true,
	"submitted_on": true,
}

// GetInnovations lists innovations: admins see all, users see their own.
func GetInnovations(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var innovations []models.Innovation
	q := config.DB.Order("innovation_id")
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&innovations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch innovations"})
		return
	}

	c.JSON(http.StatusOK, innovations)
}

type InnovationRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Domain      *string `json:"domain"`
	Level       *string `json:"level"`
	Status      *string `json:"status"`
	SubmittedOn *string `json:"submitted_on"`
}

// AddInnovation creates an innovation owned by the caller.
func AddInnovation(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	var req InnovationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submittedOn, err := parseDate(req.SubmittedOn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	innovation := models.Innovation{
		Title:       req.Title,
		Description: req.Description,
		Domain:      req.Domain,
		Level:       req.Level,
		Status:      req.Status,
		SubmittedOn: submittedOn,
		CreatedAt:   &now,
		UpdatedAt:   &now,
		UserID:      &userID,
	}
	if err := config.DB.Create(&innovation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create innovation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Innovation created", "innovation_id": innovation.InnovationID})
}

// UpdateInnovation updates whitelisted fields. Owners and admins only.
func UpdateInnovation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var innovation models.Innovation
	if err := config.DB.Where("innovation_id = ?", id).First(&innovation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Innovation not found"})
		return
	}
	if role != models.RoleAdmin && (innovation.UserID == nil || *innovation.UserID != userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for key := range data {
		if !innovationUpdatableFields[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Field - Cannot update: " + key})
			return
		}
	}
	data["updated_at"] = time.Now()

	if err := config.DB.Model(&innovation).Updates(data).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update innovation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Innovation updated"})
}

// DeleteInnovation removes an innovation. Admin only (enforced in routes).
func DeleteInnovation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var innovation models.Innovation
	if err := config.DB.Where("innovation_id = ?", id).First(&innovation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Innovation not found"})
		return
	}

	if err := config.DB.Delete(&innovation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete innovation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Innovation deleted"})
}
