package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/policy"
	"github.com/crewtrack/crewtrack/internal/progress"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/crewtrack/crewtrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name            string                `json:"name" binding:"required"`
	Client          string                `json:"client" binding:"required"`
	StartDate       time.Time             `json:"startDate" binding:"required"`
	EndDate         time.Time             `json:"endDate" binding:"required"`
	Manager         string                `json:"manager" binding:"required"`
	Requirements    string                `json:"requirements" binding:"required"`
	Suggestions     string                `json:"suggestions"`
	TechStack       *models.TechStackInfo `json:"techStack"`
	GithubLink      string                `json:"githubLink"`
	ClientContact   string                `json:"clientContact"`
	ClientPhone     string                `json:"clientPhone"`
	ClientEmail     string                `json:"clientEmail"`
	EstimatedBudget string                `json:"estimatedBudget"`
	Team            []uint                `json:"team"`
}

// UpdateProjectRequest uses pointers so an absent field and an empty
// value can be told apart.
type UpdateProjectRequest struct {
	Name            *string               `json:"name"`
	Client          *string               `json:"client"`
	StartDate       *time.Time            `json:"startDate"`
	EndDate         *time.Time            `json:"endDate"`
	Manager         *string               `json:"manager"`
	Requirements    *string               `json:"requirements"`
	Suggestions     *string               `json:"suggestions"`
	Status          *string               `json:"status" binding:"omitempty,oneof=active completed delayed"`
	TechStack       *models.TechStackInfo `json:"techStack"`
	GithubLink      *string               `json:"githubLink"`
	ClientContact   *string               `json:"clientContact"`
	ClientPhone     *string               `json:"clientPhone"`
	ClientEmail     *string               `json:"clientEmail"`
	EstimatedBudget *string               `json:"estimatedBudget"`
	Team            []uint                `json:"team"`
}

type ProjectResponse struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	Client          string                `json:"client"`
	StartDate       time.Time             `json:"startDate"`
	EndDate         time.Time             `json:"endDate"`
	Manager         string                `json:"manager"`
	Requirements    string                `json:"requirements"`
	Suggestions     string                `json:"suggestions,omitempty"`
	CreatedBy       uint                  `json:"createdBy"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	UpdatedBy       *uint                 `json:"updatedBy,omitempty"`
	TechStack       *models.TechStackInfo `json:"techStack,omitempty"`
	Status          string                `json:"status"`
	GithubLink      string                `json:"githubLink,omitempty"`
	ClientContact   string                `json:"clientContact,omitempty"`
	ClientPhone     string                `json:"clientPhone,omitempty"`
	ClientEmail     string                `json:"clientEmail,omitempty"`
	EstimatedBudget string                `json:"estimatedBudget,omitempty"`
	Team            []uint                `json:"team"`
	TeamMembers     []types.UserResponse  `json:"teamMembers"`
	Progress        int                   `json:"progress"`
	Messages        []MessageResponse     `json:"messages,omitempty"`
	CreatedByName   string                `json:"createdByName,omitempty"`
	UpdatedByName   string                `json:"updatedByName,omitempty"`
}

func projectTeam(projectID uint) ([]uint, []types.UserResponse, error) {
	var memberships []models.ProjectMembership

	err := db.DB.Preload("User").
		Where("project_id = ?", projectID).
		Order("user_id").
		Find(&memberships).Error

	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(memberships))
	members := make([]types.UserResponse, 0, len(memberships))

	for _, m := range memberships {
		ids = append(ids, m.UserID)
		members = append(members, userResponse(m.User))
	}

	return ids, members, nil
}

func projectResponse(project models.Project, team []uint, members []types.UserResponse) ProjectResponse {
	resp := ProjectResponse{
		ID:              project.ID,
		Name:            project.Name,
		Client:          project.Client,
		StartDate:       project.StartDate,
		EndDate:         project.EndDate,
		Manager:         project.Manager,
		Requirements:    project.Requirements,
		Suggestions:     project.Suggestions,
		CreatedBy:       project.CreatedBy,
		UpdatedAt:       project.UpdatedAt,
		UpdatedBy:       project.UpdatedBy,
		Status:          project.Status,
		GithubLink:      project.GithubLink,
		ClientContact:   project.ClientContact,
		ClientPhone:     project.ClientPhone,
		ClientEmail:     project.ClientEmail,
		EstimatedBudget: project.EstimatedBudget,
		Team:            team,
		TeamMembers:     members,
		Progress:        progress.Progress(project.StartDate, project.EndDate, time.Now()),
	}

	if len(project.TechStack) > 0 {
		var stack models.TechStackInfo
		if err := json.Unmarshal(project.TechStack, &stack); err == nil {
			resp.TechStack = &stack
		}
	}

	return resp
}

func marshalTechStack(stack *models.TechStackInfo) ([]byte, error) {
	if stack == nil {
		return nil, nil
	}
	return json.Marshal(stack)
}

func userNameByID(id uint) string {
	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		return ""
	}

	return user.Name
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	techStack, err := marshalTechStack(body.TechStack)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tech stack"})
		return
	}

	project := models.Project{
		Name:            body.Name,
		Client:          body.Client,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		Manager:         body.Manager,
		Requirements:    body.Requirements,
		Suggestions:     body.Suggestions,
		CreatedBy:       currentUser.ID,
		TechStack:       techStack,
		Status:          types.StatusActive,
		GithubLink:      body.GithubLink,
		ClientContact:   body.ClientContact,
		ClientPhone:     body.ClientPhone,
		ClientEmail:     body.ClientEmail,
		EstimatedBudget: body.EstimatedBudget,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		for _, userID := range body.Team {
			membership := models.ProjectMembership{ProjectID: project.ID, UserID: userID}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	team, members, err := projectTeam(project.ID)

	if err != nil {
		log.Printf("Failed to load project team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project, team, members))
}

func ListProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		team, members, err := projectTeam(project.ID)

		if err != nil {
			log.Printf("Failed to load team for project %d: %v", project.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		response = append(response, projectResponse(project, team, members))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
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

	team, members, err := projectTeam(project.ID)

	if err != nil {
		log.Printf("Failed to load project team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !policy.CanViewProject(currentUser.Role, currentUser.ID, team) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	messages, err := projectMessages(project.ID)

	if err != nil {
		log.Printf("Failed to load project messages: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := projectResponse(project, team, members)
	response.Messages = messages
	response.CreatedByName = userNameByID(project.CreatedBy)

	if project.UpdatedBy != nil {
		response.UpdatedByName = userNameByID(*project.UpdatedBy)
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
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

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
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

	if body.Requirements != nil || body.Suggestions != nil {
		if !policy.CanEditRestrictedFields(currentUser.Role, currentUser.ID, project.CreatedBy) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project creator can edit requirements and suggestions"})
			return
		}
	}

	updates := map[string]interface{}{
		"updated_by": currentUser.ID,
	}

	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Client != nil {
		updates["client"] = *body.Client
	}
	if body.StartDate != nil {
		updates["start_date"] = *body.StartDate
	}
	if body.EndDate != nil {
		updates["end_date"] = *body.EndDate
	}
	if body.Manager != nil {
		updates["manager"] = *body.Manager
	}
	if body.Requirements != nil {
		updates["requirements"] = *body.Requirements
	}
	if body.Suggestions != nil {
		updates["suggestions"] = *body.Suggestions
	}
	if body.Status != nil {
		updates["status"] = *body.Status
	}
	if body.GithubLink != nil {
		updates["github_link"] = *body.GithubLink
	}
	if body.ClientContact != nil {
		updates["client_contact"] = *body.ClientContact
	}
	if body.ClientPhone != nil {
		updates["client_phone"] = *body.ClientPhone
	}
	if body.ClientEmail != nil {
		updates["client_email"] = *body.ClientEmail
	}
	if body.EstimatedBudget != nil {
		updates["estimated_budget"] = *body.EstimatedBudget
	}
	if body.TechStack != nil {
		techStack, err := marshalTechStack(body.TechStack)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tech stack"})
			return
		}
		updates["tech_stack"] = techStack
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Updates(updates).Error; err != nil {
			return err
		}

		if body.Team != nil {
			return reconcileTeam(tx, project.ID, body.Team)
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if err := db.DB.First(&project, project.ID).Error; err != nil {
		log.Printf("Failed to refresh project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	team, members, err := projectTeam(project.ID)

	if err != nil {
		log.Printf("Failed to load project team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	messages, err := projectMessages(project.ID)

	if err != nil {
		log.Printf("Failed to load project messages: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := projectResponse(project, team, members)
	response.Messages = messages
	response.CreatedByName = userNameByID(project.CreatedBy)

	if project.UpdatedBy != nil {
		response.UpdatedByName = userNameByID(*project.UpdatedBy)
	}

	ctx.JSON(http.StatusOK, response)
}

// reconcileTeam brings the membership rows to the submitted roster by
// set difference: existing members stay untouched, missing ones are
// added, extras are removed. Removal is a hard delete so a member can
// be re-added later without tripping the (user, project) unique index.
func reconcileTeam(tx *gorm.DB, projectID uint, roster []uint) error {
	var memberships []models.ProjectMembership

	if err := tx.Where("project_id = ?", projectID).Find(&memberships).Error; err != nil {
		return err
	}

	current := make(map[uint]bool, len(memberships))

	for _, m := range memberships {
		current[m.UserID] = true
	}

	wanted := make(map[uint]bool, len(roster))

	for _, userID := range roster {
		wanted[userID] = true

		if !current[userID] {
			membership := models.ProjectMembership{ProjectID: projectID, UserID: userID}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}
	}

	for _, m := range memberships {
		if !wanted[m.UserID] {
			if err := tx.Unscoped().Delete(&m).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func DeleteProject(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
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

	// Children before parent, all in one transaction.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.ProjectMessage{},
			&models.ProjectMeeting{},
			&models.UserNote{},
			&models.ProjectMembership{},
		} {
			if err := tx.Unscoped().Where("project_id = ?", project.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&project).Error
	})

	if err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
