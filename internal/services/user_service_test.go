// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firenoc/firenoc-backend/internal/models"
)

func TestDeleteAccount_RemovesUndecidedData(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "11:00 AM",
	})
	require.NoError(t, err)

	_, err = env.grievances.CreateGrievance(applicant.ID, &CreateGrievanceRequest{
		Subject:     "General question",
		Description: "How long does processing take",
		Category:    "other",
	})
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(applicant.ID))

	var userCount, appCount, inspCount, grvCount, roleCount, bldgCount int64
	env.db.Model(&models.User{}).Where("id = ?", applicant.ID).Count(&userCount)
	env.db.Model(&models.Application{}).Where("applicant_id = ?", applicant.ID).Count(&appCount)
	env.db.Model(&models.Inspection{}).Where("application_id = ?", app.ID).Count(&inspCount)
	env.db.Model(&models.Grievance{}).Where("submitted_by = ?", applicant.ID).Count(&grvCount)
	env.db.Model(&models.UserRole{}).Where("user_id = ?", applicant.ID).Count(&roleCount)
	env.db.Model(&models.Building{}).Where("id = ?", app.BuildingID).Count(&bldgCount)

	assert.Zero(t, userCount)
	assert.Zero(t, appCount)
	assert.Zero(t, inspCount)
	assert.Zero(t, grvCount)
	assert.Zero(t, roleCount)
	assert.Zero(t, bldgCount)
}

func TestDeleteAccount_ApprovedApplicationSurvives(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	decided, err := env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID: app.ID,
		Decision:      "approve",
	})
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(applicant.ID))

	// The certificate must remain publicly verifiable
	var appCount int64
	env.db.Model(&models.Application{}).Where("id = ?", app.ID).Count(&appCount)
	assert.Equal(t, int64(1), appCount)

	result, err := env.verification.VerifyNOC(decided.NOC.NOCNumber)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestDeleteAccount_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	require.NoError(t, env.users.DeleteAccount(applicant.ID))

	err := env.users.DeleteAccount(applicant.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
