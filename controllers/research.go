package controllers

import (
	"net/http"
	"time"

	"riise-api/config"
	"riise-api/models"

	"github.com/gin-gonic/gin"
)

var paperUpdatableFields = map[string]bool{
	"title":            true,
	"abstract":         true,
	"authors":          true,
	"publication_date": true,
	"doi":              true,
	"citations":        true,
	"status":           true,
}

// GetResearchPapers lists papers: admins see all, users see their own.
func GetResearchPapers(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var papers []models.ResearchPaper
	q := config.DB.Order("paper_id")
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&papers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch research papers"})
		return
	}

	c.JSON(http.StatusOK, papers)
}

type ResearchPaperRequest struct {
	Title           string  `json:"title" binding:"required"`
	Abstract        *string `json:"abstract"`
	Authors         *string `json:"authors"`
	PublicationDate *string `json:"publication_date"`
	DOI             *string `json:"doi"`
	Citations       *int    `json:"citations"`
	Status          *string `json:"status"`
}

// AddResearchPaper creates a paper owned by the caller.
func AddResearchPaper(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	var req ResearchPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publicationDate, err := parseDate(req.PublicationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	paper := models.ResearchPaper{
		Title:           req.Title,
		Abstract:        req.Abstract,
		Authors:         req.Authors,
		PublicationDate: publicationDate,
		DOI:             req.DOI,
		Citations:       req.Citations,
		Status:          req.Status,
		CreatedAt:       &now,
		UpdatedAt:       &now,
		UserID:          userID,
	}
	if err := config.DB.Create(&paper).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create research paper"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Research paper created", "paper_id": paper.PaperID})
}

// UpdateResearchPaper updates whitelisted fields. Owners and admins only.
func UpdateResearchPaper(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	userID, _ := getUserIDFromContext(c)
	role, _ := getRoleFromContext(c)

	var paper models.ResearchPaper
	if err := config.DB.Where("paper_id = ?", id).First(&paper).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Research paper not found"})
		return
	}
	if role != models.RoleAdmin && paper.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for key := range data {
		if !paperUpdatableFields[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Field - Cannot update: " + key})
			return
		}
	}
	data["updated_at"] = time.Now()

	if err := config.DB.Model(&paper).Updates(data).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update research paper"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Research paper updated"})
}

// DeleteResearchPaper removes a paper. Admin only (enforced in routes).
func DeleteResearchPaper(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var paper models.ResearchPaper
	if err := config.DB.Where("paper_id = ?", id).First(&paper).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Research paper not found"})
		return
	}

	if err := config.DB.Delete(&paper).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete research paper"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Research paper deleted"})
}
