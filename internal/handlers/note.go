package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/policy"
	"github.com/crewtrack/crewtrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpsertNoteRequest struct {
	StackSuggestions string `json:"stackSuggestions"`
	TechnicalNotes   string `json:"technicalNotes"`
}

type NoteResponse struct {
	ProjectID        uint   `json:"projectId"`
	UserID           uint   `json:"userId"`
	StackSuggestions string `json:"stackSuggestions"`
	TechnicalNotes   string `json:"technicalNotes"`
}

func GetNote(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	userID, err := utils.ParseIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var note models.UserNote

	err = db.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&note).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// An absent note reads as an empty one.
			ctx.JSON(http.StatusOK, NoteResponse{ProjectID: projectID, UserID: userID})
			return
		}
		log.Printf("Failed to fetch note: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, NoteResponse{
		ProjectID:        note.ProjectID,
		UserID:           note.UserID,
		StackSuggestions: note.StackSuggestions,
		TechnicalNotes:   note.TechnicalNotes,
	})
}

func UpsertNote(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	userID, err := utils.ParseIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !policy.CanEditNote(currentUser.Role, currentUser.ID, userID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own notes"})
		return
	}

	var body UpsertNoteRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Update-if-exists keyed on the (project, user) unique index.
	var note models.UserNote

	err = db.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&note).Error

	switch {
	case err == nil:
		updates := map[string]interface{}{
			"stack_suggestions": body.StackSuggestions,
			"technical_notes":   body.TechnicalNotes,
		}
		if err := db.DB.Model(&note).Updates(updates).Error; err != nil {
			log.Printf("Failed to update note: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save note"})
			return
		}
		note.StackSuggestions = body.StackSuggestions
		note.TechnicalNotes = body.TechnicalNotes
	case errors.Is(err, gorm.ErrRecordNotFound):
		note = models.UserNote{
			ProjectID:        projectID,
			UserID:           userID,
			StackSuggestions: body.StackSuggestions,
			TechnicalNotes:   body.TechnicalNotes,
		}
		if err := db.DB.Create(&note).Error; err != nil {
			log.Printf("Failed to create note: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save note"})
			return
		}
	default:
		log.Printf("Failed to fetch note: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, NoteResponse{
		ProjectID:        note.ProjectID,
		UserID:           note.UserID,
		StackSuggestions: note.StackSuggestions,
		TechnicalNotes:   note.TechnicalNotes,
	})
}
