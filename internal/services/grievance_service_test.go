// internal/services/grievance_service_test.go
package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firenoc/firenoc-backend/internal/models"
)

func TestCreateGrievance_LinkedToApplication(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	app := env.submitApplication(t, applicant)

	grievance, err := env.grievances.CreateGrievance(applicant.ID, &CreateGrievanceRequest{
		Subject:           "Inspection delayed",
		Description:       "No officer has visited after three weeks",
		Category:          "delay",
		ApplicationNumber: app.ApplicationNumber,
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^GRV-\d{8}-\d{4}$`), grievance.GrievanceNumber)
	assert.Equal(t, models.GrievanceStatusSubmitted, grievance.Status)
	require.NotNil(t, grievance.ApplicationID)
	assert.Equal(t, app.ID, *grievance.ApplicationID)
}

func TestCreateGrievance_ForeignApplicationRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, models.RoleApplicant)
	bob := env.createUser(t, models.RoleApplicant)
	app := env.submitApplication(t, alice)

	_, err := env.grievances.CreateGrievance(bob.ID, &CreateGrievanceRequest{
		Subject:           "Complaint",
		Description:       "About someone else's application",
		Category:          "other",
		ApplicationNumber: app.ApplicationNumber,
	})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestResolveGrievance_NotifiesSubmitter(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleSeniorOfficer)

	grievance, err := env.grievances.CreateGrievance(applicant.ID, &CreateGrievanceRequest{
		Subject:     "Portal error",
		Description: "Upload keeps failing",
		Category:    "technical",
	})
	require.NoError(t, err)

	resolved, err := env.grievances.Resolve(officer.ID, &ResolveGrievanceRequest{
		GrievanceID: grievance.ID,
		Resolution:  "Upload service restarted, issue fixed",
	})
	require.NoError(t, err)

	assert.Equal(t, models.GrievanceStatusResolved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	notification := env.lastNotification(t, applicant.ID)
	assert.Contains(t, notification.Message, grievance.GrievanceNumber)
	assert.Contains(t, notification.Message, "resolved")
}

func TestSubmitFeedback_ValidatesRating(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)

	grievance, err := env.grievances.CreateGrievance(applicant.ID, &CreateGrievanceRequest{
		Subject:     "Slow processing",
		Description: "Took too long",
		Category:    "delay",
	})
	require.NoError(t, err)

	_, err = env.grievances.SubmitFeedback(applicant.ID, grievance.ID, 6, "great")
	assert.Error(t, err)

	updated, err := env.grievances.SubmitFeedback(applicant.ID, grievance.ID, 4, "handled well")
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)
}
