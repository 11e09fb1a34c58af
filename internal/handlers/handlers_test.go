package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/auth"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/router"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupServer builds a router over a fresh in-memory database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Every pooled connection to :memory: is its own database, so pin
	// the pool to a single connection.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())

	return router.NewRouter()
}

func createUser(t *testing.T, name, email, password, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	require.NoError(t, db.DB.Create(&user).Error)

	return user
}

func createProject(t *testing.T, name string, createdBy uint) models.Project {
	t.Helper()

	project := models.Project{
		Name:         name,
		Client:       "Acme",
		StartDate:    time.Now().AddDate(0, 0, -5),
		EndDate:      time.Now().AddDate(0, 0, 5),
		Manager:      "Some Manager",
		Requirements: "Build the thing.",
		CreatedBy:    createdBy,
		Status:       types.StatusActive,
	}

	require.NoError(t, db.DB.Create(&project).Error)

	return project
}

func addMember(t *testing.T, projectID, userID uint) {
	t.Helper()

	membership := models.ProjectMembership{ProjectID: projectID, UserID: userID}
	require.NoError(t, db.DB.Create(&membership).Error)
}

func sessionFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateSessionToken(user.ID, user.Email)
	require.NoError(t, err)

	return token
}

// doJSON issues a request with an optional session token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
