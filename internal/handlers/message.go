package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/policy"
	"github.com/crewtrack/crewtrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	ProjectID uint      `json:"projectId"`
	UserID    uint      `json:"userId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"userName"`
}

// projectMessages returns the full log, oldest first, with author
// names joined in.
func projectMessages(projectID uint) ([]MessageResponse, error) {
	var messages []models.ProjectMessage

	err := db.DB.Preload("User").
		Where("project_id = ?", projectID).
		Order("timestamp").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	response := make([]MessageResponse, 0, len(messages))

	for _, m := range messages {
		response = append(response, MessageResponse{
			ID:        m.ID,
			ProjectID: m.ProjectID,
			UserID:    m.UserID,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			UserName:  m.User.Name,
		})
	}

	return response, nil
}

func CreateMessage(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	team, _, err := projectTeam(project.ID)

	if err != nil {
		log.Printf("Failed to load project team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !policy.CanPostMessage(currentUser.Role, currentUser.ID, team) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You must be part of the project team"})
		return
	}

	var body CreateMessageRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message := models.ProjectMessage{
		ProjectID: project.ID,
		UserID:    currentUser.ID,
		Content:   body.Content,
		Timestamp: time.Now(),
	}

	if err := db.DB.Create(&message).Error; err != nil {
		log.Printf("Failed to create message: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	ctx.JSON(http.StatusCreated, MessageResponse{
		ID:        message.ID,
		ProjectID: message.ProjectID,
		UserID:    message.UserID,
		Content:   message.Content,
		Timestamp: message.Timestamp,
		UserName:  currentUser.Name,
	})
}
