package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertNoteKeepsOneRowPerPair(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@empresa.pt", "admin123", types.RoleAdmin)
	tekkie := createUser(t, "Alice", "alice@empresa.pt", "tekkie123", types.RoleTekkie)
	project := createProject(t, "Platform", admin.ID)

	path := fmt.Sprintf("/api/projects/%d/notes/%d", project.ID, tekkie.ID)
	token := sessionFor(t, tekkie)

	first := doJSON(t, r, http.MethodPut, path, token, map[string]string{
		"technicalNotes": "first draft",
	})
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, r, http.MethodPut, path, token, map[string]string{
		"technicalNotes":   "second draft",
		"stackSuggestions": "try templ",
	})
	require.Equal(t, http.StatusOK, second.Code)

	var count int64
	require.NoError(t, db.DB.Model(&models.UserNote{}).
		Where("project_id = ? AND user_id = ?", project.ID, tekkie.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var note models.UserNote
	require.NoError(t, db.DB.
		Where("project_id = ? AND user_id = ?", project.ID, tekkie.ID).
		First(&note).Error)
	assert.Equal(t, "second draft", note.TechnicalNotes)
	assert.Equal(t, "try templ", note.StackSuggestions)
}

func TestTekkieCannotEditOthersNotes(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@empresa.pt", "admin123", types.RoleAdmin)
	owner := createUser(t, "Owner", "owner@empresa.pt", "pass1234", types.RoleTekkie)
	other := createUser(t, "Other", "other@empresa.pt", "pass1234", types.RoleTekkie)
	project := createProject(t, "Platform", admin.ID)

	path := fmt.Sprintf("/api/projects/%d/notes/%d", project.ID, owner.ID)

	denied := doJSON(t, r, http.MethodPut, path, sessionFor(t, other), map[string]string{
		"technicalNotes": "graffiti",
	})
	assert.Equal(t, http.StatusForbidden, denied.Code)

	// A manager may edit anyone's note.
	allowed := doJSON(t, r, http.MethodPut, path, sessionFor(t, admin), map[string]string{
		"technicalNotes": "manager note",
	})
	assert.Equal(t, http.StatusOK, allowed.Code)
}

func TestGetMissingNoteReadsAsEmpty(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@empresa.pt", "admin123", types.RoleAdmin)
	tekkie := createUser(t, "Alice", "alice@empresa.pt", "tekkie123", types.RoleTekkie)
	project := createProject(t, "Platform", admin.ID)

	w := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/projects/%d/notes/%d", project.ID, tekkie.ID),
		sessionFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ProjectID        uint   `json:"projectId"`
		UserID           uint   `json:"userId"`
		StackSuggestions string `json:"stackSuggestions"`
		TechnicalNotes   string `json:"technicalNotes"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, project.ID, resp.ProjectID)
	assert.Equal(t, tekkie.ID, resp.UserID)
	assert.Empty(t, resp.StackSuggestions)
	assert.Empty(t, resp.TechnicalNotes)
}
