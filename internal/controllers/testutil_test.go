package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"careconnect/internal/config"
	"careconnect/internal/controllers"
	"careconnect/internal/location"
	"careconnect/internal/middleware"
	"careconnect/internal/models"
	"careconnect/internal/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTest points the global DB handle at a fresh in-memory database and
// returns a fully wired router.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	// Keyless client serves deterministic mock responses.
	controllers.Places = &location.Client{HTTP: http.DefaultClient}

	return routes.SetupRouter()
}

func createUser(t *testing.T, name, email, userType string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:     name,
		Email:    email,
		Phone:    "555-0100",
		Password: string(hashed),
		UserType: userType,
		Role:     "user",
		IsActive: true,
	}
	if userType == "admin" {
		user.Role = "admin"
	}
	require.NoError(t, config.DB.Create(user).Error)
	return user
}

func createCaregiverWithRate(t *testing.T, email string, rate float64) (*models.User, *models.CaregiverProfile) {
	t.Helper()

	user := createUser(t, "Caregiver "+email, email, "caregiver")
	profile := &models.CaregiverProfile{
		UserID:             user.ID,
		HourlyRate:         rate,
		Experience:         "5 years",
		Specialties:        `["elderly_care"]`,
		Location:           "Seattle, WA",
		VerificationStatus: models.VerificationApproved,
		Active:             true,
	}
	require.NoError(t, config.DB.Create(profile).Error)
	return user, profile
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// doRequest performs a JSON request against the router, optionally
// authenticated.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
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

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
