package service_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavourly/backend/internal/service"
	"github.com/flavourly/backend/internal/testhelpers"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, testSecret)

	user, token, err := auth.Register("Jane Doe", "Jane@Example.com", "hunter22", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Regexp(t, regexp.MustCompile(`^jane-doe-[0-9a-f]{8}$`), user.Username)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	// Registered credentials log in, with email lookup case-insensitive
	// on the stored lowered form.
	loggedIn, loginToken, err := auth.Login("jane@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, testSecret)

	_, _, err := auth.Register("First", "dup@example.com", "password1", "")
	require.NoError(t, err)

	_, _, err = auth.Register("Second", "DUP@example.com", "password2", "")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, testSecret)

	_, _, err := auth.Register("Jane", "jane@example.com", "correct-horse", "")
	require.NoError(t, err)

	_, _, err = auth.Login("jane@example.com", "wrong-horse")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, testSecret)

	user, token, err := auth.Register("Jane", "jane@example.com", "hunter22", "")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret is rejected.
	other := service.NewAuthService(db, "another-secret-entirely-different")
	_, otherToken, err := other.Register("Evil", "evil@example.com", "password1", "")
	require.NoError(t, err)
	_, err = auth.ValidateToken(otherToken)
	assert.Error(t, err)
}
