// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/firenoc/firenoc-backend/internal/config"
	"github.com/firenoc/firenoc-backend/internal/database"
	"github.com/firenoc/firenoc-backend/internal/models"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

type testEnv struct {
	db            *gorm.DB
	numbering     *NumberingService
	notifications *NotificationService
	applications  *ApplicationService
	verification  *VerificationService
	grievances    *GrievanceService
	users         *UserService
	admin         *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	numbering := NewNumberingService(db)
	notifications := NewNotificationService(db, config.EmailConfig{})

	return &testEnv{
		db:            db,
		numbering:     numbering,
		notifications: notifications,
		applications:  NewApplicationService(db, numbering, notifications, "http://localhost:5173"),
		verification:  NewVerificationService(db),
		grievances:    NewGrievanceService(db, numbering, notifications),
		users:         NewUserService(db),
		admin:         NewAdminService(db),
	}
}

func (e *testEnv) createUser(t *testing.T, role models.AppRole) *models.User {
	t.Helper()
	user := &models.User{
		FullName: "Test " + string(role),
		Email:    string(role) + "-" + uuid.NewString() + "@example.com",
	}
	require.NoError(t, user.SetPassword("Str0ng!Pass"))
	require.NoError(t, e.db.Create(user).Error)
	require.NoError(t, e.db.Create(&models.UserRole{UserID: user.ID, Role: role}).Error)
	return user
}

func (e *testEnv) submitApplication(t *testing.T, applicant *models.User) *models.Application {
	t.Helper()
	app, err := e.applications.CreateApplication(applicant.ID, &CreateApplicationRequest{
		Building: BuildingInput{
			Name:     "Sunrise Apartments",
			Category: models.BuildingCategoryResidential,
			Address:  "12 MG Road",
			City:     "Pune",
			State:    "Maharashtra",
			Pincode:  "411001",
			Floors:   4,
			AreaSqft: 12000,
		},
		Purpose: "Occupancy certificate renewal",
	})
	require.NoError(t, err)
	return app
}

func defaultPagination() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

func (e *testEnv) lastNotification(t *testing.T, userID uuid.UUID) *models.Notification {
	t.Helper()
	var n models.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).Order("created_at DESC").First(&n).Error)
	return &n
}
