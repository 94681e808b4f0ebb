package services

import (
	"testing"

	"piwork_backend/internal/repositories"
	"piwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_UnreadCountAndRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	require.NoError(t, repo.CreateCaseCreatedNotification("user-1", "case-1", "First"))
	require.NoError(t, repo.CreateNewMessageNotification("user-1", "case-1", "Sender"))
	require.NoError(t, repo.CreateCaseCreatedNotification("user-2", "case-2", "Other"))

	count, err := svc.GetUnreadCount("user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	listing, err := svc.GetUserNotifications("user-1", repositories.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, listing.Notifications, 2)

	require.NoError(t, svc.MarkAsRead("user-1", listing.Notifications[0].ID))
	count, err = svc.GetUnreadCount("user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.MarkAllAsRead("user-1"))
	count, err = svc.GetUnreadCount("user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Other user's notifications are untouched.
	count, err = svc.GetUnreadCount("user-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkAsRead_ScopedToOwner(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	require.NoError(t, repo.CreateCaseCreatedNotification("user-1", "case-1", "Mine"))
	listing, err := svc.GetUserNotifications("user-1", repositories.NotificationCriteria{})
	require.NoError(t, err)

	err = svc.MarkAsRead("user-2", listing.Notifications[0].ID)
	assertErrorCode(t, err, apperrors.CodeNotFound)
}

func TestGetUserNotifications_FiltersUnreadAndType(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	require.NoError(t, repo.CreateCaseCreatedNotification("user-1", "case-1", "First"))
	require.NoError(t, repo.CreateNewMessageNotification("user-1", "case-1", "Sender"))

	byType, err := svc.GetUserNotifications("user-1", repositories.NotificationCriteria{Type: repositories.NotificationTypeNewMessage})
	require.NoError(t, err)
	assert.Len(t, byType.Notifications, 1)

	all, err := svc.GetUserNotifications("user-1", repositories.NotificationCriteria{})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAsRead("user-1", all.Notifications[0].ID))

	unread, err := svc.GetUserNotifications("user-1", repositories.NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, unread.Notifications, 1)
}

func TestGetUserNotifications_ClampsPaging(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	listing, err := svc.GetUserNotifications("user-1", repositories.NotificationCriteria{Page: -3, PageSize: 10000})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 20, listing.PageSize)
}
