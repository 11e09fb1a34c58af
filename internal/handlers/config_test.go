package handlers_test

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/crewtrack/crewtrack/internal/config"
	"github.com/crewtrack/crewtrack/internal/handlers"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigPath(t *testing.T) {
	t.Helper()

	previous := handlers.ConfigPath
	handlers.ConfigPath = filepath.Join(t.TempDir(), "db_config.json")
	t.Cleanup(func() { handlers.ConfigPath = previous })

	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_BACKEND", "")
	t.Setenv("SQLITE_PATH", "")
}

func TestConfigRoutesAreAdminOnly(t *testing.T) {
	r := setupServer(t)
	useTempConfigPath(t)

	pm := createUser(t, "PM", "pm@empresa.pt", "pm123", types.RoleProjectManager)

	for _, path := range []string{"/api/config/db", "/api/config/schema"} {
		w := doJSON(t, r, http.MethodGet, path, sessionFor(t, pm), nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s should be admin-only", path)
	}
}

func TestSaveAndReadDatabaseConfig(t *testing.T) {
	r := setupServer(t)
	useTempConfigPath(t)

	admin := createUser(t, "Admin", "admin@empresa.pt", "admin123", types.RoleAdmin)
	token := sessionFor(t, admin)

	saved := doJSON(t, r, http.MethodPost, "/api/config/db", token, map[string]string{
		"type":             config.BackendExternal,
		"connectionString": "postgres://crew:crew@db:5432/crewtrack",
	})
	require.Equal(t, http.StatusOK, saved.Code)

	w := doJSON(t, r, http.MethodGet, "/api/config/db", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg config.Database
	decodeBody(t, w, &cfg)

	assert.Equal(t, config.BackendExternal, cfg.Type)
	assert.Equal(t, "postgres://crew:crew@db:5432/crewtrack", cfg.ConnectionString)

	rejected := doJSON(t, r, http.MethodPost, "/api/config/db", token, map[string]string{
		"type": "carrier-pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, rejected.Code)
}

func TestDefaultDatabaseConfig(t *testing.T) {
	r := setupServer(t)
	useTempConfigPath(t)

	admin := createUser(t, "Admin", "admin@empresa.pt", "admin123", types.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/config/db", sessionFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg config.Database
	decodeBody(t, w, &cfg)

	assert.Equal(t, config.BackendLocal, cfg.Type)
}

func TestSchemaDownload(t *testing.T) {
	r := setupServer(t)

	admin := createUser(t, "Admin", "admin@empresa.pt", "admin123", types.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/config/schema", sessionFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Disposition"), "schema.sql")
	assert.Contains(t, w.Body.String(), "CREATE TABLE")
	assert.Contains(t, w.Body.String(), "-- Migration: 0001_users.sql")
}
