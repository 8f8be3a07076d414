// internal/services/application_service_test.go
package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firenoc/firenoc-backend/internal/models"
)

func TestCreateApplication_SubmitsWithNumber(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)

	app := env.submitApplication(t, applicant)

	assert.Equal(t, models.ApplicationStatusSubmitted, app.Status)
	assert.Regexp(t, regexp.MustCompile(`^APP-\d{8}-\d{4}$`), app.ApplicationNumber)
	assert.NotNil(t, app.SubmittedAt)
	assert.NotEqual(t, app.BuildingID.String(), "00000000-0000-0000-0000-000000000000")

	var building models.Building
	require.NoError(t, env.db.First(&building, "id = ?", app.BuildingID).Error)
	assert.Equal(t, "Sunrise Apartments", building.Name)
	assert.Equal(t, applicant.ID, building.OwnerID)
}

func TestScheduleInspection_TransitionsAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	app := env.submitApplication(t, applicant)

	inspection, err := env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:00 AM",
	})
	require.NoError(t, err)

	assert.Equal(t, models.InspectionStatusScheduled, inspection.Status)
	assert.Equal(t, officer.ID, inspection.OfficerID)

	var reloaded models.Application
	require.NoError(t, env.db.First(&reloaded, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationStatusInspectionScheduled, reloaded.Status)
	require.NotNil(t, reloaded.AssignedOfficerID)
	assert.Equal(t, officer.ID, *reloaded.AssignedOfficerID)

	notification := env.lastNotification(t, applicant.ID)
	expected := fmt.Sprintf("Your inspection for application %s is scheduled for 2026-09-15 at 10:00 AM. Building: Sunrise Apartments",
		app.ApplicationNumber)
	assert.Equal(t, expected, notification.Message)
}

func TestScheduleInspection_RescheduleReplacesBooking(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	other := env.createUser(t, models.RoleSeniorOfficer)
	app := env.submitApplication(t, applicant)

	first, err := env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:00 AM",
	})
	require.NoError(t, err)

	second, err := env.applications.ScheduleInspection(other.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-20",
		ScheduledTime: "02:00 PM",
	})
	require.NoError(t, err)

	// Same row, new booking
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, other.ID, second.OfficerID)
	assert.Equal(t, "02:00 PM", second.ScheduledTime)

	var count int64
	require.NoError(t, env.db.Model(&models.Inspection{}).
		Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestScheduleInspection_RejectsUnknownTimeSlot(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:30 AM",
	})
	assert.Error(t, err)
}

func TestCompleteInspection_RequiresExistingBooking(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	app := env.submitApplication(t, applicant)

	score := 85
	_, err := env.applications.CompleteInspection(officer.ID, &CompleteInspectionRequest{
		ApplicationID: app.ID,
		Findings:      "All exits clear",
		OverallScore:  &score,
	})
	assert.ErrorIs(t, err, ErrInspectionNotFound)

	// Status must not have moved
	var reloaded models.Application
	require.NoError(t, env.db.First(&reloaded, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationStatusSubmitted, reloaded.Status)
}

func TestCompleteInspection_RecordsFindingsAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:00 AM",
	})
	require.NoError(t, err)

	score := 92
	inspection, err := env.applications.CompleteInspection(officer.ID, &CompleteInspectionRequest{
		ApplicationID:   app.ID,
		Findings:        "Sprinklers operational, extinguishers serviced",
		Recommendations: "Replace two exit signs",
		OverallScore:    &score,
	})
	require.NoError(t, err)

	assert.Equal(t, models.InspectionStatusCompleted, inspection.Status)
	require.NotNil(t, inspection.OverallScore)
	assert.Equal(t, 92, *inspection.OverallScore)

	var reloaded models.Application
	require.NoError(t, env.db.First(&reloaded, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationStatusInspectionCompleted, reloaded.Status)

	notification := env.lastNotification(t, applicant.ID)
	expected := fmt.Sprintf("The inspection for your application %s has been completed. Score: 92. Decision pending.",
		app.ApplicationNumber)
	assert.Equal(t, expected, notification.Message)
}

func TestCompleteInspection_StoresPhotoURLs(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:00 AM",
	})
	require.NoError(t, err)

	score := 88
	inspection, err := env.applications.CompleteInspection(officer.ID, &CompleteInspectionRequest{
		ApplicationID: app.ID,
		Findings:      "Hydrant pressure within limits",
		OverallScore:  &score,
		PhotoUrls: []string{
			"https://cdn.example.com/inspections/stairwell.jpg",
			"https://cdn.example.com/inspections/pump-room.jpg",
		},
	})
	require.NoError(t, err)
	assert.Len(t, inspection.Photos, 2)

	var reloaded models.Inspection
	require.NoError(t, env.db.First(&reloaded, "id = ?", inspection.ID).Error)
	assert.Contains(t, reloaded.Photos, "https://cdn.example.com/inspections/stairwell.jpg")
	assert.Contains(t, reloaded.Photos, "https://cdn.example.com/inspections/pump-room.jpg")
}

func TestDecide_ApproveIssuesCertificate(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:00 AM",
	})
	require.NoError(t, err)
	score := 82
	_, err = env.applications.CompleteInspection(officer.ID, &CompleteInspectionRequest{
		ApplicationID: app.ID,
		OverallScore:  &score,
	})
	require.NoError(t, err)

	decided, err := env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID: app.ID,
		Decision:      "approve",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusApproved, decided.Status)
	require.NotNil(t, decided.NOC)
	assert.Regexp(t, regexp.MustCompile(`^NOC-\d{8}-\d{4}$`), decided.NOC.NOCNumber)
	assert.Equal(t, models.NOCStatusActive, decided.NOC.Status)
	assert.Equal(t, applicant.FullName, decided.NOC.IssuedTo)
	assert.Equal(t, "http://localhost:5173/verify/"+decided.NOC.NOCNumber, decided.NOC.QRCodeData)

	// Valid for one year from issue
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), decided.NOC.ValidUntil, time.Minute)

	notification := env.lastNotification(t, applicant.ID)
	assert.Equal(t, "NOC Approved", notification.Title)
	expected := fmt.Sprintf("Your application %s has been approved. Your NOC Number: %s",
		app.ApplicationNumber, decided.NOC.NOCNumber)
	assert.Equal(t, expected, notification.Message)

	var building models.Building
	require.NoError(t, env.db.First(&building, "id = ?", app.BuildingID).Error)
	require.NotNil(t, building.NOCValidUntil)
}

func TestDecide_RejectRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID:   app.ID,
		Decision:        "reject",
		RejectionReason: "   ",
	})
	assert.ErrorIs(t, err, ErrRejectionReasonRequired)

	var reloaded models.Application
	require.NoError(t, env.db.First(&reloaded, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationStatusSubmitted, reloaded.Status)
}

func TestDecide_RejectRecordsReasonAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	decided, err := env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID:   app.ID,
		Decision:        "reject",
		RejectionReason: "Insufficient fire exits",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusRejected, decided.Status)
	assert.Equal(t, "Insufficient fire exits", decided.RejectionReason)

	var nocCount int64
	require.NoError(t, env.db.Model(&models.NOC{}).
		Where("application_id = ?", app.ID).Count(&nocCount).Error)
	assert.Equal(t, int64(0), nocCount)

	notification := env.lastNotification(t, applicant.ID)
	assert.Equal(t, "NOC Rejected", notification.Title)
	expected := fmt.Sprintf("Your application %s was rejected. Reason: Insufficient fire exits",
		app.ApplicationNumber)
	assert.Equal(t, expected, notification.Message)
}

func TestDecide_TerminalApplicationConflicts(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID:   app.ID,
		Decision:        "reject",
		RejectionReason: "Missing fire alarm system",
	})
	require.NoError(t, err)

	_, err = env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID: app.ID,
		Decision:      "approve",
	})
	assert.ErrorIs(t, err, ErrApplicationDecided)

	// Still rejected, no certificate minted
	var reloaded models.Application
	require.NoError(t, env.db.First(&reloaded, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationStatusRejected, reloaded.Status)
}

func TestDecide_UnknownDecisionRejected(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID: app.ID,
		Decision:      "escalate",
	})
	assert.Error(t, err)
}

func TestScheduleInspection_TerminalApplicationConflicts(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	officer := env.createUser(t, models.RoleFireOfficer)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	_, err := env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID:   app.ID,
		Decision:        "reject",
		RejectionReason: "Structural concerns",
	})
	require.NoError(t, err)

	_, err = env.applications.ScheduleInspection(officer.ID, &ScheduleInspectionRequest{
		ApplicationID: app.ID,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:00 AM",
	})
	assert.ErrorIs(t, err, ErrApplicationDecided)
}

func TestMarkRequiresCompliance(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.createUser(t, models.RoleApplicant)
	admin := env.createUser(t, models.RoleAdmin)
	app := env.submitApplication(t, applicant)

	updated, err := env.applications.MarkRequiresCompliance(admin.ID, app.ID, "Install smoke detectors on all floors")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRequiresCompliance, updated.Status)

	// Still decidable afterwards
	_, err = env.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID: app.ID,
		Decision:      "approve",
	})
	require.NoError(t, err)
}

func TestListApplications_ApplicantSeesOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, models.RoleApplicant)
	bob := env.createUser(t, models.RoleApplicant)
	env.submitApplication(t, alice)
	env.submitApplication(t, bob)
	env.submitApplication(t, bob)

	result, err := env.applications.ListApplications(alice.ID, false, ApplicationSearchParams{
		PaginationParams: defaultPagination(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	staffResult, err := env.applications.ListApplications(alice.ID, true, ApplicationSearchParams{
		PaginationParams: defaultPagination(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), staffResult.Total)
}

func TestGetApplication_OtherApplicantHidden(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, models.RoleApplicant)
	bob := env.createUser(t, models.RoleApplicant)
	app := env.submitApplication(t, alice)

	_, err := env.applications.GetApplication(app.ID, bob.ID, false)
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	got, err := env.applications.GetApplication(app.ID, bob.ID, true)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)
}
