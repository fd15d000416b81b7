package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListSubscriptions(ctx context.Context) ([]models.SubscriptionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionSummary), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный отчёт",
			setupMock: func(m *MockService) {
				endDate := "2026-04-02T00:00:00Z"
				remaining := 30
				m.On("ListSubscriptions", mock.Anything).
					Return([]models.SubscriptionSummary{
						{
							UserUID:       "user-1",
							Status:        models.StatusTrialing,
							PlanType:      models.PlanTrial,
							StartDate:     "2026-02-01T00:00:00Z",
							EndDate:       &endDate,
							RemainingDays: &remaining,
							UserEmail:     "agent@example.com",
							UserName:      "Ivan Petrov",
							IulSalesCount: 0,
						},
						{
							UserUID:       "user-2",
							Status:        models.StatusActive,
							PlanType:      models.PlanMonthly,
							StartDate:     "2026-01-10T00:00:00Z",
							UserEmail:     "unknown@deleted",
							UserName:      "Unknown User",
							IulSalesCount: 3,
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[
				{"userId":"user-1","status":"trialing","planType":"trial","startDate":"2026-02-01T00:00:00Z","endDate":"2026-04-02T00:00:00Z","remainingDays":30,"userEmail":"agent@example.com","userName":"Ivan Petrov","foreverFree":false,"iulSalesCount":0},
				{"userId":"user-2","status":"active","planType":"monthly","startDate":"2026-01-10T00:00:00Z","endDate":null,"remainingDays":null,"userEmail":"unknown@deleted","userName":"Unknown User","foreverFree":false,"iulSalesCount":3}
			]`,
		},
		{
			name: "пустой отчёт",
			setupMock: func(m *MockService) {
				m.On("ListSubscriptions", mock.Anything).
					Return([]models.SubscriptionSummary{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "ошибка хранилища",
			setupMock: func(m *MockService) {
				m.On("ListSubscriptions", mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to fetch subscriptions"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/admin/subscriptions", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
