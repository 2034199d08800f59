package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"riise-api/config"
	"riise-api/models"
	"riise-api/services"
	"riise-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UpdateProfile lets the caller change their display name and scholar
// profile link. Email, role and verification status are not editable
// here.
func UpdateProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	var req struct {
		Name      *string `json:"name"`
		ScholarID *string `json:"scholar_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := utils.SanitizeInput(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}
		updates["name"] = name
	}
	if req.ScholarID != nil {
		updates["scholar_id"] = utils.SanitizeInput(*req.ScholarID)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// ListUsers returns every account. Admin only (enforced in routes).
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("user_id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// VerifyUser marks an account as verified. Admin only.
func VerifyUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := config.DB.Model(&user).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User verified"})
}

// UploadIDCard stores the caller's ID card image and records its path.
func UploadIDCard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	file, err := c.FormFile("id_card")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_card file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	stored := filepath.Join(uploadPath, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	if err := config.DB.Model(&models.User{}).Where("user_id = ?", userID).Update("id_card_url", stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ID card uploaded", "id_card_url": stored})
}

// RefreshScholarMetrics pulls fresh h-index/i10-index/citation counts
// for the caller from the external scholarly-metrics service.
func RefreshScholarMetrics(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found"})
		return
	}

	svc := services.NewScholarMetricsService(nil)
	user, err := svc.RefreshUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoScholarID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No scholar profile linked to this account"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Scholar metrics lookup failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scholar metrics updated", "user": user})
}
