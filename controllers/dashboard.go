package controllers

import (
	"net/http"
	"time"

	"riise-api/models"
	"riise-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns contribution statistics as JSON: the
// caller's own rollup for regular users, the fleet-wide rollup for
// admins.
func GetDashboardStats(c *gin.Context) {
	userID, userOK := getUserIDFromContext(c)
	role, roleOK := getRoleFromContext(c)
	if !userOK || !roleOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	agg := services.NewAggregatorService(nil)
	stats := gin.H{"current_date": time.Now().Format("2006-01-02")}

	if role == models.RoleAdmin {
		summaries, globals, err := agg.SummarizeAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
			return
		}
		stats["users"] = summaries
		stats["totals"] = globals
		stats["total_contributions"] = globals.Total()
	} else {
		summary, err := agg.Summarize(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
			return
		}
		timeline, err := agg.SummarizeTimeline(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
			return
		}
		stats["counts"] = summary.Counts
		stats["total_contributions"] = summary.Total
		stats["timeline"] = timeline
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
