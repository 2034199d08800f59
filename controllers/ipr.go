package controllers

import (
	"net/http"
	"time"

	"riise-api/config"
	"riise-api/models"

	"github.com/gin-gonic/gin"
)

var iprUpdatableFields = map[string]bool{
	"ipr_type":           true,
	"title":              true,
	"ipr_number":         true,
	"filing_date":        true,
	"status":             true,
	"related_startup_id": true,
}

// GetIPRs lists IPR records: admins see all, users see their own.
func GetIPRs(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var iprs []models.IPR
	q := config.DB.Order("ipr_id")
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&iprs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch IPR records"})
		return
	}

	c.JSON(http.StatusOK, iprs)
}

type IPRRequest struct {
	IPRType          string  `json:"ipr_type" binding:"required"`
	Title            string  `json:"title" binding:"required"`
	IPRNumber        *string `json:"ipr_number"`
	FilingDate       *string `json:"filing_date"`
	Status           *string `json:"status"`
	RelatedStartupID *uint   `json:"related_startup_id"`
}

// AddIPR creates an IPR record owned by the caller.
func AddIPR(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	var req IPRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filingDate, err := parseDate(req.FilingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	ipr := models.IPR{
		IPRType:          req.IPRType,
		Title:            req.Title,
		IPRNumber:        req.IPRNumber,
		FilingDate:       filingDate,
		Status:           req.Status,
		RelatedStartupID: req.RelatedStartupID,
		CreatedAt:        &now,
		UpdatedAt:        &now,
		UserID:           userID,
	}
	if err := config.DB.Create(&ipr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create IPR record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "IPR record created", "ipr_id": ipr.IPRID})
}

// UpdateIPR updates whitelisted fields of an IPR record. Owners and
// admins only; an unknown field rejects the whole update.
func UpdateIPR(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var ipr models.IPR
	if err := config.DB.Where("ipr_id = ?", id).First(&ipr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "IPR record not found"})
		return
	}
	if role != models.RoleAdmin && ipr.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for key := range data {
		if !iprUpdatableFields[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Field - Cannot update: " + key})
			return
		}
	}
	data["updated_at"] = time.Now()

	if err := config.DB.Model(&ipr).Updates(data).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update IPR record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "IPR record updated"})
}

// DeleteIPR removes an IPR record. Admin only (enforced in routes).
func DeleteIPR(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var ipr models.IPR
	if err := config.DB.Where("ipr_id = ?", id).First(&ipr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "IPR record not found"})
		return
	}

	if err := config.DB.Delete(&ipr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete IPR record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "IPR record deleted"})
}
