package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"piwork_backend/internal/email"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They implement the repository interfaces with
// the same error contracts as the GORM implementations so services can be
// exercised without a database.

var errWriteFailed = errors.New("write failed")

func stamp(m *models.BaseModel) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// ---- users ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	stamp(&user.BaseModel)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateRole(userID string, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) CountByRole(role models.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// ---- profiles ----

type fakeProfileRepo struct {
	mu            sync.Mutex
	subscribers   map[string]*models.SubscriberProfile   // keyed by user ID
	investigators map[string]*models.InvestigatorProfile // keyed by user ID
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		subscribers:   make(map[string]*models.SubscriberProfile),
		investigators: make(map[string]*models.InvestigatorProfile),
	}
}

func (r *fakeProfileRepo) CreateSubscriberProfile(profile *models.SubscriberProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&profile.BaseModel)
	clone := *profile
	r.subscribers[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) FindSubscriberProfile(userID string) (*models.SubscriberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.subscribers[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) UpdateSubscriberPlan(userID string, plan models.SubscriptionPlan, casesRemaining int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.subscribers[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	profile.SubscriptionPlan = plan
	profile.CasesRemaining = casesRemaining
	return nil
}

func (r *fakeProfileRepo) DecrementCasesRemaining(userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.subscribers[userID]
	if !ok || profile.CasesRemaining <= 0 {
		return false, nil
	}
	profile.CasesRemaining--
	return true, nil
}

func (r *fakeProfileRepo) CreateInvestigatorProfile(profile *models.InvestigatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&profile.BaseModel)
	clone := *profile
	r.investigators[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) FindInvestigatorProfile(userID string) (*models.InvestigatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.investigators[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) UpdateInvestigatorProfile(profile *models.InvestigatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.investigators[profile.UserID]; !ok {
		return repositories.ErrProfileNotFound
	}
	clone := *profile
	r.investigators[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) SetAvailability(userID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.investigators[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	profile.IsAvailable = available
	return nil
}

func (r *fakeProfileRepo) FindInvestigators(filter repositories.InvestigatorFilter) ([]models.InvestigatorProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.InvestigatorProfile
	for _, p := range r.investigators {
		if filter.AvailableOnly && !p.IsAvailable {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(filter.Location)) {
			continue
		}
		matched = append(matched, *p)
	}
	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.PageSize
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeProfileRepo) ApplyReviewRating(investigatorID string, rating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.investigators[investigatorID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	profile.Rating = (profile.Rating*float64(profile.ReviewCount) + float64(rating)) / float64(profile.ReviewCount+1)
	profile.ReviewCount++
	return nil
}

// ---- cases ----

type fakeCaseRepo struct {
	mu    sync.Mutex
	cases map[string]*models.Case
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[string]*models.Case)}
}

func (r *fakeCaseRepo) Create(c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&c.BaseModel)
	clone := *c
	r.cases[c.ID] = &clone
	return nil
}

func (r *fakeCaseRepo) FindByID(id string) (*models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kase, ok := r.cases[id]
	if !ok {
		return nil, repositories.ErrCaseNotFound
	}
	clone := *kase
	return &clone, nil
}

func (r *fakeCaseRepo) FindByIDWithMessages(id string) (*models.Case, error) {
	return r.FindByID(id)
}

func (r *fakeCaseRepo) FindByClient(clientID string, limit, offset int) ([]models.Case, int64, error) {
	return r.findWhere(func(c *models.Case) bool { return c.ClientID == clientID }, limit, offset)
}

func (r *fakeCaseRepo) FindByInvestigator(investigatorID string, limit, offset int) ([]models.Case, int64, error) {
	return r.findWhere(func(c *models.Case) bool {
		return c.InvestigatorID != nil && *c.InvestigatorID == investigatorID
	}, limit, offset)
}

func (r *fakeCaseRepo) FindAll(limit, offset int) ([]models.Case, int64, error) {
	return r.findWhere(func(*models.Case) bool { return true }, limit, offset)
}

func (r *fakeCaseRepo) findWhere(match func(*models.Case) bool, limit, offset int) ([]models.Case, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Case
	for _, c := range r.cases {
		if match(c) {
			matched = append(matched, *c)
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeCaseRepo) Update(c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cases[c.ID]; !ok {
		return repositories.ErrCaseNotFound
	}
	clone := *c
	r.cases[c.ID] = &clone
	return nil
}

func (r *fakeCaseRepo) Assign(caseID, investigatorID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kase, ok := r.cases[caseID]
	if !ok {
		return repositories.ErrCaseNotFound
	}
	kase.InvestigatorID = &investigatorID
	kase.Status = models.CaseStatusActive
	kase.LastActivity = at
	return nil
}

func (r *fakeCaseRepo) TouchLastActivity(caseID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kase, ok := r.cases[caseID]
	if !ok {
		return repositories.ErrCaseNotFound
	}
	kase.LastActivity = at
	return nil
}

func (r *fakeCaseRepo) Delete(caseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cases[caseID]; !ok {
		return repositories.ErrCaseNotFound
	}
	delete(r.cases, caseID)
	return nil
}

func (r *fakeCaseRepo) CountByStatus() (map[models.CaseStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.CaseStatus]int64)
	for _, c := range r.cases {
		counts[c.Status]++
	}
	return counts, nil
}

// ---- messages ----

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&message.BaseModel)
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) FindByCase(caseID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Message
	for _, m := range r.messages {
		if m.CaseID == caseID {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (r *fakeMessageRepo) CountByCase(caseID string) (int64, error) {
	messages, _ := r.FindByCase(caseID)
	return int64(len(messages)), nil
}

// ---- reviews ----

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&review.BaseModel)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) FindByID(id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.ID == id {
			clone := rev
			return &clone, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) ExistsForCase(caseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.CaseID == caseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) FindByInvestigator(investigatorID string, limit, offset int) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Review
	for _, rev := range r.reviews {
		if rev.InvestigatorID == investigatorID {
			matched = append(matched, rev)
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ---- notifications ----

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	failWrites    bool // simulates a broken relay
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errWriteFailed
	}
	stamp(&notification.BaseModel)
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		if criteria.Type != "" && n.Type != criteria.Type {
			continue
		}
		matched = append(matched, n)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeNotificationRepo) MarkAsRead(userID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].UserID == userID {
			now := time.Now()
			r.notifications[i].IsRead = true
			r.notifications[i].ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := range r.notifications {
		if r.notifications[i].UserID == userID && !r.notifications[i].IsRead {
			r.notifications[i].IsRead = true
			r.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) DeleteReadOlderThan(olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Notification
	var deleted int64
	for _, n := range r.notifications {
		if n.IsRead && n.CreatedAt.Before(olderThan) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return deleted, nil
}

func (r *fakeNotificationRepo) add(userID, kind, title string) error {
	return r.Create(&models.Notification{UserID: userID, Type: kind, Title: title})
}

func (r *fakeNotificationRepo) CreateCaseCreatedNotification(subscriberID, caseID, caseTitle string) error {
	return r.add(subscriberID, repositories.NotificationTypeCaseCreated, caseTitle)
}

func (r *fakeNotificationRepo) CreateCaseAssignmentNotification(investigatorID, caseID, caseTitle string) error {
	return r.add(investigatorID, repositories.NotificationTypeCaseAssignment, caseTitle)
}

func (r *fakeNotificationRepo) CreateCaseUpdatedNotification(recipientID, caseID, caseTitle string, status models.CaseStatus) error {
	return r.add(recipientID, repositories.NotificationTypeCaseUpdated, caseTitle)
}

func (r *fakeNotificationRepo) CreateNewMessageNotification(recipientID, caseID, senderName string) error {
	return r.add(recipientID, repositories.NotificationTypeNewMessage, senderName)
}

func (r *fakeNotificationRepo) CreateNewReviewNotification(investigatorID, caseID string, rating int) error {
	return r.add(investigatorID, repositories.NotificationTypeNewReview, caseID)
}

func (r *fakeNotificationRepo) CreatePlanChangedNotification(subscriberID string, plan models.SubscriptionPlan, casesRemaining int) error {
	return r.add(subscriberID, repositories.NotificationTypePlanChanged, string(plan))
}

func (r *fakeNotificationRepo) byType(userID, kind string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && n.Type == kind {
			matched = append(matched, n)
		}
	}
	return matched
}

// ---- subscriptions ----

type fakeSubscriptionRepo struct {
	mu            sync.Mutex
	subscriptions []models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{}
}

func (r *fakeSubscriptionRepo) Create(subscription *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&subscription.BaseModel)
	r.subscriptions = append(r.subscriptions, *subscription)
	return nil
}

func (r *fakeSubscriptionRepo) FindActiveByUser(userID string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.subscriptions) - 1; i >= 0; i-- {
		s := r.subscriptions[i]
		if s.UserID == userID && s.Status == models.SubscriptionStatusActive {
			clone := s
			return &clone, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) CancelActive(userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subscriptions {
		if r.subscriptions[i].UserID == userID && r.subscriptions[i].Status == models.SubscriptionStatusActive {
			r.subscriptions[i].Status = models.SubscriptionStatusCancelled
			r.subscriptions[i].CancelledAt = &at
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) ExpireOverdue(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired int64
	for i := range r.subscriptions {
		if r.subscriptions[i].Status == models.SubscriptionStatusActive && r.subscriptions[i].NextBillingDate.Before(now) {
			r.subscriptions[i].Status = models.SubscriptionStatusExpired
			expired++
		}
	}
	return expired, nil
}

func (r *fakeSubscriptionRepo) CountByPlan() (map[models.SubscriptionPlan]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.SubscriptionPlan]int64)
	for _, s := range r.subscriptions {
		if s.Status == models.SubscriptionStatusActive {
			counts[s.Plan]++
		}
	}
	return counts, nil
}

// ---- email ----

type recordingEmailProvider struct {
	mu   sync.Mutex
	sent []email.Message
}

func (p *recordingEmailProvider) Send(msg *email.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *msg)
	return nil
}
