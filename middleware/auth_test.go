package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-roy-21/RoyElegance/models"
	"github.com/ayush-roy-21/RoyElegance/utils"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

// Rejection paths never reach the user lookup, so a nil collection is fine.
func runAuth(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	Auth(nil, testSecret)(c)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	w := runAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided")
}

func TestAuthNonBearerHeader(t *testing.T) {
	w := runAuth(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedToken(t *testing.T) {
	w := runAuth(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAuthExpiredToken(t *testing.T) {
	token, err := utils.GenerateToken("64f000000000000000000001", testSecret, -time.Minute)
	require.NoError(t, err)

	w := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthWrongSecret(t *testing.T) {
	token, err := utils.GenerateToken("64f000000000000000000001", []byte("other"), time.Hour)
	require.NoError(t, err)

	w := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthNonHexUserID(t *testing.T) {
	token, err := utils.GenerateToken("definitely-not-hex", testSecret, time.Hour)
	require.NoError(t, err)

	w := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func runAdmin(t *testing.T, user *models.User) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/login-events", nil)
	if user != nil {
		SetUser(c, user)
	}
	Admin()(c)
	return w, !c.IsAborted()
}

func TestAdminRejectsAnonymous(t *testing.T) {
	w, passed := runAdmin(t, nil)
	assert.False(t, passed)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRejectsRegularUser(t *testing.T) {
	w, passed := runAdmin(t, &models.User{Role: models.RoleUser})
	assert.False(t, passed)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admins only")
}

func TestAdminAllowsAdmin(t *testing.T) {
	_, passed := runAdmin(t, &models.User{Role: models.RoleAdmin})
	assert.True(t, passed)
}

func TestUserFrom(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, UserFrom(c))

	user := &models.User{Name: "Asha"}
	SetUser(c, user)
	assert.Equal(t, user, UserFrom(c))
}
