// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/firenoc/firenoc-backend/internal/database"
	"github.com/firenoc/firenoc-backend/internal/models"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	router := gin.New()
	return db, router
}

func createUserWithRole(t *testing.T, db *gorm.DB, role models.AppRole) *models.User {
	t.Helper()
	user := &models.User{
		FullName: "Test " + string(role),
		Email:    string(role) + "-" + uuid.NewString() + "@example.com",
	}
	require.NoError(t, user.SetPassword("Str0ng!Pass"))
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, Role: role}).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(user.ID, user.Email, user.FullName, user.RoleNames(), 1)
	require.NoError(t, err)
	return token
}

func TestAuthRequired_MissingToken(t *testing.T) {
	_, router := setupAuthTest(t)
	router.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	_, router := setupAuthTest(t)
	router.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	db, router := setupAuthTest(t)
	user := createUserWithRole(t, db, models.RoleApplicant)

	router.GET("/protected", AuthRequired(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
}

func TestRoleRequired_ApplicantBlockedFromStaffRoute(t *testing.T) {
	db, router := setupAuthTest(t)
	applicant := createUserWithRole(t, db, models.RoleApplicant)

	router.POST("/inspections", AuthRequired(), StaffRequired(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspections", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, applicant))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleRequired_OfficerAllowedOnStaffRoute(t *testing.T) {
	db, router := setupAuthTest(t)
	officer := createUserWithRole(t, db, models.RoleFireOfficer)

	router.POST("/inspections", AuthRequired(), StaffRequired(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspections", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, officer))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequired_OfficerBlockedFromAdminRoute(t *testing.T) {
	db, router := setupAuthTest(t)
	officer := createUserWithRole(t, db, models.RoleSeniorOfficer)

	router.POST("/admin/decision", AuthRequired(), AdminRequired(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/decision", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, officer))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleRequired_AdminAllowedOnAdminRoute(t *testing.T) {
	db, router := setupAuthTest(t)
	admin := createUserWithRole(t, db, models.RoleAdmin)

	router.POST("/admin/decision", AuthRequired(), AdminRequired(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/decision", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, admin))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequired_RevokedRoleTakesEffectImmediately(t *testing.T) {
	db, router := setupAuthTest(t)
	officer := createUserWithRole(t, db, models.RoleFireOfficer)
	token := tokenFor(t, officer)

	router.POST("/inspections", AuthRequired(), StaffRequired(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Revoke the role after the token was issued
	require.NoError(t, db.Where("user_id = ?", officer.ID).Delete(&models.UserRole{}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspections", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
