package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateMeetingRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Feedback string    `json:"feedback" binding:"required"`
}

type MeetingResponse struct {
	ID        uint      `json:"id"`
	ProjectID uint      `json:"projectId"`
	Date      time.Time `json:"date"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

func meetingResponse(m models.ProjectMeeting) MeetingResponse {
	return MeetingResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Date:      m.Date,
		Feedback:  m.Feedback,
		CreatedAt: m.CreatedAt,
	}
}

func ListMeetings(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var meetings []models.ProjectMeeting

	err = db.DB.Where("project_id = ?", projectID).
		Order("date").
		Find(&meetings).Error

	if err != nil {
		log.Printf("Failed to list meetings: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]MeetingResponse, 0, len(meetings))

	for _, m := range meetings {
		response = append(response, meetingResponse(m))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateMeeting(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var body CreateMeetingRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	meeting := models.ProjectMeeting{
		ProjectID: projectID,
		Date:      body.Date,
		Feedback:  body.Feedback,
	}

	if err := db.DB.Create(&meeting).Error; err != nil {
		log.Printf("Failed to create meeting: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meeting"})
		return
	}

	ctx.JSON(http.StatusCreated, meetingResponse(meeting))
}
