package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginSuccess(t *testing.T) {
	r := setupServer(t)
	createUser(t, "Alice", "alice@empresa.pt", "tekkie123", types.RoleTekkie)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@empresa.pt",
		"password": "tekkie123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User types.UserResponse `json:"user"`
	}
	decodeBody(t, w, &body)

	assert.Equal(t, "Alice", body.User.Name)
	assert.Equal(t, types.RoleTekkie, body.User.Role)
	assert.NotContains(t, w.Body.String(), "passwordHash", "hash must never be serialized")
	assert.NotContains(t, w.Body.String(), "password_hash")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "token", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	r := setupServer(t)
	createUser(t, "Alice", "alice@empresa.pt", "tekkie123", types.RoleTekkie)

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@empresa.pt",
		"password": "nope-nope",
	})
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@empresa.pt",
		"password": "tekkie123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String(),
		"response must not reveal whether the email exists")
}

func TestLoginBlankPasswordRecoveryFlow(t *testing.T) {
	r := setupServer(t)

	// A reset account carries the hash of an empty password. Login with
	// a blank password must go through the normal comparison path.
	hash, err := bcrypt.GenerateFromPassword([]byte(""), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:               "Reset User",
		Email:              "reset@empresa.pt",
		PasswordHash:       string(hash),
		Role:               types.RoleTekkie,
		MustChangePassword: true,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "reset@empresa.pt",
		"password": "",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMe(t *testing.T) {
	r := setupServer(t)
	user := createUser(t, "Alice", "alice@empresa.pt", "tekkie123", types.RoleTekkie)

	unauthenticated := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, unauthenticated.Code)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", sessionFor(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@empresa.pt")
}

func TestLogoutIsIdempotent(t *testing.T) {
	r := setupServer(t)

	first := doJSON(t, r, http.MethodPost, "/api/auth/logout", "", nil)
	second := doJSON(t, r, http.MethodPost, "/api/auth/logout", "", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestChangePassword(t *testing.T) {
	r := setupServer(t)

	user := createUser(t, "Alice", "alice@empresa.pt", "oldpassword", types.RoleTekkie)
	require.NoError(t, db.DB.Model(&user).Update("must_change_password", true).Error)

	token := sessionFor(t, user)

	wrong := doJSON(t, r, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "not-the-password",
		"newPassword":     "brandnewpass",
	})
	assert.Equal(t, http.StatusBadRequest, wrong.Code)

	ok := doJSON(t, r, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "oldpassword",
		"newPassword":     "brandnewpass",
	})
	require.Equal(t, http.StatusOK, ok.Code)

	var updated models.User
	require.NoError(t, db.DB.First(&updated, user.ID).Error)

	assert.False(t, updated.MustChangePassword, "forced-change flag must be cleared")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("brandnewpass")))

	login := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@empresa.pt",
		"password": "brandnewpass",
	})
	assert.Equal(t, http.StatusOK, login.Code)
}

func TestLoginNormalizesEmail(t *testing.T) {
	r := setupServer(t)
	createUser(t, "Alice", "alice@empresa.pt", "tekkie123", types.RoleTekkie)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    strings.ToUpper("alice@empresa.pt"),
		"password": "tekkie123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}
