package services

import (
	"testing"
	"time"

	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	*caseFixture
	messages *fakeMessageRepo
	svc      MessageService
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	base := newCaseFixture(t)
	messages := newFakeMessageRepo()
	return &messageFixture{
		caseFixture: base,
		messages:    messages,
		svc:         NewMessageService(base.cases, messages, base.users, base.notifications),
	}
}

func (f *messageFixture) assignedCase(t *testing.T) *models.Case {
	t.Helper()
	kase := f.createCase(t, "Background Check: Acme Co.")
	assigned, err := f.caseFixture.svc.AssignInvestigator(kase.ID, f.investigator.ID, f.subscriber.ID)
	require.NoError(t, err)
	return assigned
}

func TestPostMessage_DeliversToCounterparty(t *testing.T) {
	f := newMessageFixture(t)
	kase := f.assignedCase(t)

	msg, err := f.svc.PostMessage(kase.ID, f.subscriber.ID, &dto.PostMessageRequest{Content: "Any updates?"})
	require.NoError(t, err)
	assert.Equal(t, f.subscriber.ID, msg.SenderID)
	assert.Equal(t, "Any updates?", msg.Content)

	// Client sent it, investigator is notified, with the sender's name.
	notifications := f.notifications.byType(f.investigator.ID, repositories.NotificationTypeNewMessage)
	require.Len(t, notifications, 1)
	assert.Equal(t, f.subscriber.FullName, notifications[0].Title)
}

func TestPostMessage_InvestigatorNotifiesClient(t *testing.T) {
	f := newMessageFixture(t)
	kase := f.assignedCase(t)

	_, err := f.svc.PostMessage(kase.ID, f.investigator.ID, &dto.PostMessageRequest{Content: "Report attached."})
	require.NoError(t, err)

	notifications := f.notifications.byType(f.subscriber.ID, repositories.NotificationTypeNewMessage)
	assert.Len(t, notifications, 1)
}

func TestPostMessage_UnassignedCaseHasNoRecipient(t *testing.T) {
	f := newMessageFixture(t)
	kase := f.createCase(t, "Nobody listening")

	_, err := f.svc.PostMessage(kase.ID, f.subscriber.ID, &dto.PostMessageRequest{Content: "Hello?"})
	assertErrorCode(t, err, apperrors.CodeNoRecipient)

	// Nothing was stored.
	stored, merr := f.messages.FindByCase(kase.ID)
	require.NoError(t, merr)
	assert.Empty(t, stored)
}

func TestPostMessage_NonPartyForbidden(t *testing.T) {
	f := newMessageFixture(t)
	kase := f.assignedCase(t)

	stranger := &models.User{Email: "stranger@example.com", Role: models.UserRoleSubscriber}
	require.NoError(t, f.users.Create(stranger))

	_, err := f.svc.PostMessage(kase.ID, stranger.ID, &dto.PostMessageRequest{Content: "Let me in"})
	assertErrorCode(t, err, apperrors.CodeForbidden)
}

func TestPostMessage_TouchesLastActivity(t *testing.T) {
	f := newMessageFixture(t)
	kase := f.assignedCase(t)

	stale := time.Now().Add(-time.Hour)
	require.NoError(t, f.cases.TouchLastActivity(kase.ID, stale))

	_, err := f.svc.PostMessage(kase.ID, f.subscriber.ID, &dto.PostMessageRequest{Content: "ping"})
	require.NoError(t, err)

	refreshed, err := f.cases.FindByID(kase.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.LastActivity.After(stale))
}

func TestPostMessage_FailedNotificationKeepsMessage(t *testing.T) {
	f := newMessageFixture(t)
	kase := f.assignedCase(t)
	f.notifications.failWrites = true

	msg, err := f.svc.PostMessage(kase.ID, f.subscriber.ID, &dto.PostMessageRequest{Content: "still here"})
	require.NoError(t, err)

	stored, err := f.messages.FindByCase(kase.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, msg.ID, stored[0].ID)
}

func TestListMessages_PartyOrAdmin(t *testing.T) {
	f := newMessageFixture(t)
	kase := f.assignedCase(t)

	_, err := f.svc.PostMessage(kase.ID, f.subscriber.ID, &dto.PostMessageRequest{Content: "first"})
	require.NoError(t, err)

	messages, err := f.svc.ListMessages(kase.ID, f.investigator.ID, models.UserRoleInvestigator)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	_, err = f.svc.ListMessages(kase.ID, "admin-id", models.UserRoleAdmin)
	assert.NoError(t, err)

	stranger := &models.User{Email: "nosy@example.com", Role: models.UserRoleSubscriber}
	require.NoError(t, f.users.Create(stranger))
	_, err = f.svc.ListMessages(kase.ID, stranger.ID, models.UserRoleSubscriber)
	assertErrorCode(t, err, apperrors.CodeForbidden)
}
