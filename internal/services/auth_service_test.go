package services

import (
	"testing"

	"piwork_backend/internal/auth"
	"piwork_backend/internal/config"
	"piwork_backend/internal/models"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Token signing needs a configured secret; don't load config from disk.
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

type authFixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	emails   *recordingEmailProvider
	svc      AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:    newFakeUserRepo(),
		profiles: newFakeProfileRepo(),
		emails:   &recordingEmailProvider{},
	}
	f.svc = NewAuthService(f.users, f.profiles, f.emails)
	return f
}

func registerRequest(role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "correct-horse",
		FullName: "Jordan Vale",
		Role:     role,
	}
}

func TestRegister_SubscriberGetsBasicProfile(t *testing.T) {
	f := newAuthFixture(t)

	response, err := f.svc.Register(registerRequest("subscriber"))
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, models.UserRoleSubscriber, response.User.Role)

	profile, err := f.profiles.FindSubscriberProfile(response.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanBasic, profile.SubscriptionPlan)
	assert.Equal(t, 5, profile.CasesRemaining)

	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "new@example.com", f.emails.sent[0].To)

	// Token round-trips with the user's identity.
	claims, err := auth.ParseToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, claims.UserID)
	assert.Equal(t, models.UserRoleSubscriber, claims.Role)
}

func TestRegister_InvestigatorGetsAvailableProfile(t *testing.T) {
	f := newAuthFixture(t)

	response, err := f.svc.Register(registerRequest("investigator"))
	require.NoError(t, err)

	profile, err := f.profiles.FindInvestigatorProfile(response.User.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsAvailable)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(registerRequest("admin"))
	assertErrorCode(t, err, apperrors.CodeInvalidRole)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(registerRequest("subscriber"))
	require.NoError(t, err)

	_, err = f.svc.Register(registerRequest("investigator"))
	assertErrorCode(t, err, apperrors.CodeAlreadyExists)
}

func TestLogin_Succeeds(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(registerRequest("subscriber"))
	require.NoError(t, err)

	response, err := f.svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(registerRequest("subscriber"))
	require.NoError(t, err)

	_, badPass := f.svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "wrong"})
	_, badEmail := f.svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})

	assertErrorCode(t, badPass, apperrors.CodeInvalidCredentials)
	assertErrorCode(t, badEmail, apperrors.CodeInvalidCredentials)
}

func TestLogin_SuspendedAccountForbidden(t *testing.T) {
	f := newAuthFixture(t)
	response, err := f.svc.Register(registerRequest("subscriber"))
	require.NoError(t, err)

	user, err := f.users.FindByID(response.User.ID)
	require.NoError(t, err)
	user.Status = models.UserStatusSuspended
	require.NoError(t, f.users.Update(user))

	_, err = f.svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "correct-horse"})
	assertErrorCode(t, err, apperrors.CodeForbidden)
}
