package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetTrialToken(ctx context.Context, userUID string) (*models.TrialToken, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrialToken), args.Error(1)
}

func (m *MockRepository) ActivateTrial(ctx context.Context, userUID, plan string, start, renewal time.Time, token string) (string, error) {
	args := m.Called(ctx, userUID, plan, start, renewal, token)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) UpdatePlan(ctx context.Context, userUID, plan string) (int, error) {
	args := m.Called(ctx, userUID, plan)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ActivatePaid(ctx context.Context, userUID, plan string, start time.Time) (string, error) {
	args := m.Called(ctx, userUID, plan, start)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetSubscriptionWithSales(ctx context.Context, userUID string) (*models.SubscriptionWithSales, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithSales), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, userUID, status string) (int, error) {
	args := m.Called(ctx, userUID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListSubscriptionsWithUsers(ctx context.Context) ([]*models.SubscriptionWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionWithUser), args.Error(1)
}

func (m *MockRepository) CreateEmailLog(ctx context.Context, entry models.EmailLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockMailer) SendHTML(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func newTestService(repo *MockRepository, mailer *MockMailer) *SubscriptionService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewSubscriptionService(repo, mailer, "admin@example.com", logger)
}

var testUser = &models.User{
	UID:       "3f1c9a7e-0000-0000-0000-000000000001",
	Email:     "jane@example.com",
	FirstName: "Jane",
	LastName:  "Doe",
	Role:      "user",
}

func TestSubscribe_InvalidPlan(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer)

	for _, plan := range []string{"", "weekly", "TRIAL", "lifetime"} {
		result, err := service.Subscribe(context.Background(), testUser.UID, plan)
		assert.ErrorIs(t, err, ErrInvalidPlan)
		assert.Nil(t, result)
	}
	repo.AssertNotCalled(t, "GetUser")
}

func TestSubscribe_UserNotFound(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer)

	repo.On("GetUser", mock.Anything, testUser.UID).Return(nil, nil)

	result, err := service.Subscribe(context.Background(), testUser.UID, models.PlanTrial)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, result)
}

func TestSubscribe_FirstCall_ActivatesTrial(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer)

	repo.On("GetUser", mock.Anything, testUser.UID).Return(testUser, nil)
	repo.On("GetTrialToken", mock.Anything, testUser.UID).Return(nil, nil)

	var gotStart, gotRenewal time.Time
	repo.On("ActivateTrial", mock.Anything, testUser.UID, models.PlanTrial,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			gotStart = args.Get(3).(time.Time)
			gotRenewal = args.Get(4).(time.Time)
			assert.NotEmpty(t, args.String(5), "пробный токен должен быть непустым")
		}).
		Return("sub-id-1", nil)

	mailer.On("Send", []string{"admin@example.com"}, "New Trial Activated",
		"User: Jane Doe (jane@example.com)\nPlan: trial").Return(nil)
	mailer.On("SendHTML", []string{"jane@example.com"}, "Welcome! Your 60-day Trial is Active",
		mock.AnythingOfType("string")).Return(nil)

	loggedTypes := make([]string, 0, 2)
	repo.On("CreateEmailLog", mock.Anything, mock.AnythingOfType("models.EmailLog")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(models.EmailLog)
			loggedTypes = append(loggedTypes, entry.EmailType)
			assert.Equal(t, models.EmailStatusSent, entry.Status)
			require.NotNil(t, entry.SubscriptionID)
			assert.Equal(t, "sub-id-1", *entry.SubscriptionID)
		}).
		Return(nil).Twice()

	result, err := service.Subscribe(context.Background(), testUser.UID, models.PlanTrial)
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, "Trial activated", result.Message)
	assert.Equal(t, "/dashboard/home?success=true", result.Redirect)
	assert.Equal(t, 60*24*time.Hour, gotRenewal.Sub(gotStart), "дата окончания ровно через 60 дней")
	assert.Equal(t, []string{models.EmailTypeTrialAdmin, models.EmailTypeTrialUser}, loggedTypes)

	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSubscribe_FirstCall_EmailFailureDoesNotBlock(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer)

	repo.On("GetUser", mock.Anything, testUser.UID).Return(testUser, nil)
	repo.On("GetTrialToken", mock.Anything, testUser.UID).Return(nil, nil)
	repo.On("ActivateTrial", mock.Anything, testUser.UID, models.PlanMonthly,
		mock.Anything, mock.Anything, mock.Anything).Return("sub-id-1", nil)

	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp auth failed"))
	mailer.On("SendHTML", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp auth failed"))

	statuses := make([]string, 0, 2)
	repo.On("CreateEmailLog", mock.Anything, mock.AnythingOfType("models.EmailLog")).
		Run(func(args mock.Arguments) {
			statuses = append(statuses, args.Get(1).(models.EmailLog).Status)
		}).
		Return(nil).Twice()

	result, err := service.Subscribe(context.Background(), testUser.UID, models.PlanMonthly)
	require.NoError(t, err, "неудача отправки не должна ломать оформление")
	assert.True(t, result.Created)
	assert.Equal(t, []string{models.EmailStatusFailed, models.EmailStatusFailed}, statuses,
		"обе неудачные попытки зафиксированы в журнале")
}

func TestSubscribe_ActiveTrial_ChangesPlanOnly(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer)

	token := &models.TrialToken{
		UserUID:   testUser.UID,
		Token:     "opaque",
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}

	repo.On("GetUser", mock.Anything, testUser.UID).Return(testUser, nil)
	repo.On("GetTrialToken", mock.Anything, testUser.UID).Return(token, nil)
	repo.On("UpdatePlan", mock.Anything, testUser.UID, models.PlanAnnual).Return(1, nil)

	result, err := service.Subscribe(context.Background(), testUser.UID, models.PlanAnnual)
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, "Plan changed to annual", result.Message)
	repo.AssertNotCalled(t, "ActivateTrial")
	repo.AssertNotCalled(t, "ActivatePaid")
	mailer.AssertNotCalled(t, "Send")
}

func TestSubscribe_ExpiredTrial_PaidPlanActivates(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer)

	token := &models.TrialToken{
		UserUID:   testUser.UID,
		Token:     "opaque",
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}

	repo.On("GetUser", mock.Anything, testUser.UID).Return(testUser, nil)
	repo.On("GetTrialToken", mock.Anything, testUser.UID).Return(token, nil)
	repo.On("ActivatePaid", mock.Anything, testUser.UID, models.PlanMonthly,
		mock.AnythingOfType("time.Time")).Return("sub-id-1", nil)
	mailer.On("Send", []string{"admin@example.com"}, "New Paid Subscription",
		"User switched to paid\nJane Doe (jane@example.com)\nPlan: monthly").Return(nil)
	repo.On("CreateEmailLog", mock.Anything, mock.MatchedBy(func(entry models.EmailLog) bool {
		return entry.EmailType == models.EmailTypePaidAdmin && entry.Status == models.EmailStatusSent
	})).Return(nil)

	result, err := service.Subscribe(context.Background(), testUser.UID, models.PlanMonthly)
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, "Subscription activated", result.Message)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSubscribe_ExpiredTrial_TrialPlanRejected(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer)

	token := &models.TrialToken{
		UserUID:   testUser.UID,
		Token:     "opaque",
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	repo.On("GetUser", mock.Anything, testUser.UID).Return(testUser, nil)
	repo.On("GetTrialToken", mock.Anything, testUser.UID).Return(token, nil)

	result, err := service.Subscribe(context.Background(), testUser.UID, models.PlanTrial)
	assert.ErrorIs(t, err, ErrTrialExpired)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "ActivateTrial")
	repo.AssertNotCalled(t, "ActivatePaid")
	repo.AssertNotCalled(t, "UpdatePlan")
}
