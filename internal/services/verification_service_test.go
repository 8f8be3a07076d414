// internal/services/verification_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firenoc/firenoc-backend/internal/models"
)

func (e *testEnv) approvedApplication(t *testing.T) (*models.Application, *models.NOC) {
	t.Helper()
	applicant := e.createUser(t, models.RoleApplicant)
	admin := e.createUser(t, models.RoleAdmin)
	app := e.submitApplication(t, applicant)

	decided, err := e.applications.Decide(admin.ID, &DecisionRequest{
		ApplicationID: app.ID,
		Decision:      "approve",
	})
	require.NoError(t, err)
	require.NotNil(t, decided.NOC)
	return decided, decided.NOC
}

func TestVerifyNOC_Valid(t *testing.T) {
	env := newTestEnv(t)
	_, noc := env.approvedApplication(t)

	result, err := env.verification.VerifyNOC(noc.NOCNumber)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "valid", result.Status)
	assert.Equal(t, noc.NOCNumber, result.NOCNumber)
	assert.Equal(t, "Sunrise Apartments", result.BuildingName)
	assert.Equal(t, "Pune", result.BuildingCity)
}

func TestVerifyNOC_NormalizesInput(t *testing.T) {
	env := newTestEnv(t)
	_, noc := env.approvedApplication(t)

	result, err := env.verification.VerifyNOC("  " + noc.NOCNumber + " ")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestVerifyNOC_Expired(t *testing.T) {
	env := newTestEnv(t)
	_, noc := env.approvedApplication(t)

	expired := time.Now().AddDate(-1, 0, -1)
	require.NoError(t, env.db.Model(&models.NOC{}).
		Where("id = ?", noc.ID).
		Update("valid_until", expired).Error)

	result, err := env.verification.VerifyNOC(noc.NOCNumber)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "expired", result.Status)
}

func TestVerifyNOC_Revoked(t *testing.T) {
	env := newTestEnv(t)
	_, noc := env.approvedApplication(t)

	_, err := env.verification.RevokeNOC(noc.NOCNumber, "Issued against fraudulent documents")
	require.NoError(t, err)

	result, err := env.verification.VerifyNOC(noc.NOCNumber)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "revoked", result.Status)
}

func TestVerifyNOC_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.verification.VerifyNOC("NOC-20260101-9999")
	assert.ErrorIs(t, err, ErrNOCNotFound)

	_, err = env.verification.VerifyNOC("   ")
	assert.ErrorIs(t, err, ErrNOCNotFound)
}

func TestRevokeNOC_TwiceFails(t *testing.T) {
	env := newTestEnv(t)
	_, noc := env.approvedApplication(t)

	_, err := env.verification.RevokeNOC(noc.NOCNumber, "first")
	require.NoError(t, err)
	_, err = env.verification.RevokeNOC(noc.NOCNumber, "second")
	assert.ErrorIs(t, err, ErrNOCRevoked)
}
