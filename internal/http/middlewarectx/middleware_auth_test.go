package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iulcalcpro/subscription-service/internal/lib/jwt"
	"github.com/iulcalcpro/subscription-service/internal/models"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetSessionWithUser(ctx context.Context, sessionToken string, now time.Time) (*models.Session, *models.User, error) {
	args := m.Called(ctx, sessionToken, now)
	var session *models.Session
	var user *models.User
	if args.Get(0) != nil {
		session = args.Get(0).(*models.Session)
	}
	if args.Get(1) != nil {
		user = args.Get(1).(*models.User)
	}
	return session, user, args.Error(2)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSessionMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key", time.Hour)
	validJWT, err := maker.GenerateToken("uid-1", "jane@example.com", "user", "Jane", "Doe")
	require.NoError(t, err)

	storedUser := &models.User{
		UID:       "uid-2",
		Email:     "bearer@example.com",
		FirstName: "Bearer",
		LastName:  "User",
		Role:      "admin",
		Status:    "active",
	}
	storedSession := &models.Session{
		ID:           "sess-1",
		SessionToken: "opaque-session-token",
		UserUID:      "uid-2",
		Expires:      time.Now().Add(time.Hour),
	}

	tests := []struct {
		name           string
		cookie         string
		authHeader     string
		failStatus     int
		setupMock      func(*MockSessionRepository)
		expectedStatus int
		expectedUID    string
		expectedRole   string
	}{
		{
			name:           "валидный сессионный JWT в cookie",
			cookie:         validJWT,
			failStatus:     http.StatusForbidden,
			setupMock:      func(_ *MockSessionRepository) {},
			expectedStatus: http.StatusOK,
			expectedUID:    "uid-1",
			expectedRole:   "user",
		},
		{
			name:       "запасной путь через bearer-токен",
			authHeader: "Bearer opaque-session-token",
			failStatus: http.StatusUnauthorized,
			setupMock: func(m *MockSessionRepository) {
				m.On("GetSessionWithUser", mock.Anything, "opaque-session-token", mock.AnythingOfType("time.Time")).
					Return(storedSession, storedUser, nil)
			},
			expectedStatus: http.StatusOK,
			expectedUID:    "uid-2",
			expectedRole:   "admin",
		},
		{
			name:           "нет ни cookie, ни заголовка — исторический 403",
			failStatus:     http.StatusForbidden,
			setupMock:      func(_ *MockSessionRepository) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "нет ни cookie, ни заголовка — 401 для статусной точки",
			failStatus:     http.StatusUnauthorized,
			setupMock:      func(_ *MockSessionRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "неизвестный bearer-токен",
			authHeader: "Bearer stale-token",
			failStatus: http.StatusUnauthorized,
			setupMock: func(m *MockSessionRepository) {
				m.On("GetSessionWithUser", mock.Anything, "stale-token", mock.AnythingOfType("time.Time")).
					Return(nil, nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "битый JWT в cookie с валидным bearer-токеном",
			cookie:     "mangled.jwt.value",
			authHeader: "Bearer opaque-session-token",
			failStatus: http.StatusUnauthorized,
			setupMock: func(m *MockSessionRepository) {
				m.On("GetSessionWithUser", mock.Anything, "opaque-session-token", mock.AnythingOfType("time.Time")).
					Return(storedSession, storedUser, nil)
			},
			expectedStatus: http.StatusOK,
			expectedUID:    "uid-2",
			expectedRole:   "admin",
		},
		{
			name:       "ошибка хранилища при поиске сессии",
			authHeader: "Bearer opaque-session-token",
			failStatus: http.StatusUnauthorized,
			setupMock: func(m *MockSessionRepository) {
				m.On("GetSessionWithUser", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(MockSessionRepository)
			tt.setupMock(sessions)

			var gotUID, gotRole string
			var gotProfile models.UserProfile
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUID, _ = r.Context().Value(UserUID).(string)
				gotRole, _ = r.Context().Value(Role).(string)
				gotProfile, _ = r.Context().Value(Profile).(models.UserProfile)
				w.WriteHeader(http.StatusOK)
			})

			handler := SessionMiddleware(maker, sessions, testLogger(), tt.failStatus)(next)

			req := httptest.NewRequest(http.MethodGet, "/subscription-status", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedUID, gotUID)
				assert.Equal(t, tt.expectedRole, gotRole)
				assert.Empty(t, gotProfile.SubscriptionStatus,
					"статус подписки в профиле намеренно не заполняется")
			}
			sessions.AssertExpectations(t)
		})
	}
}
