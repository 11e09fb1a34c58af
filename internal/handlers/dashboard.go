package handlers

import (
	"net/http"
	"time"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/progress"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/gin-gonic/gin"
)

type DashboardResponse struct {
	TotalProjects   int `json:"total_projects"`
	Active          int `json:"active"`
	Completed       int `json:"completed"`
	Delayed         int `json:"delayed"`
	AverageProgress int `json:"average_progress"`
}

// GetDashboard summarizes status across the whole project fleet.
func GetDashboard(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	summary := DashboardResponse{TotalProjects: len(projects)}

	now := time.Now()
	totalProgress := 0

	for _, project := range projects {
		switch project.Status {
		case types.StatusActive:
			summary.Active++
		case types.StatusCompleted:
			summary.Completed++
		case types.StatusDelayed:
			summary.Delayed++
		}

		totalProgress += progress.Progress(project.StartDate, project.EndDate, now)
	}

	if len(projects) > 0 {
		summary.AverageProgress = totalProgress / len(projects)
	}

	ctx.JSON(http.StatusOK, summary)
}
