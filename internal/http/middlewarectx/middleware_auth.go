// Package middlewarectx содержит HTTP middleware для опознания пользователя.
//
// SessionMiddleware сначала пытается прочитать сессионный JWT из cookie,
// затем, как запасной вариант, ищет непрозрачный bearer-токен из заголовка
// Authorization среди сохранённых сессий. При успехе кладёт в контекст
// идентификатор пользователя, роль и профиль для дальнейшего использования
// в обработчиках.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/iulcalcpro/subscription-service/internal/http/response"
	"github.com/iulcalcpro/subscription-service/internal/lib/jwt"
	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
	"github.com/iulcalcpro/subscription-service/internal/models"
)

// SessionCookieName — имя cookie с сессионным JWT.
const SessionCookieName = "session-token"

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "user_uid"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// Profile — ключ для профиля пользователя в контексте
	Profile Key = "profile"
)

// TokenParser описывает интерфейс проверки сессионного JWT.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.SessionClaims, error)
}

// SessionRepository описывает поиск сохранённой сессии по bearer-токену.
type SessionRepository interface {
	GetSessionWithUser(ctx context.Context, sessionToken string, now time.Time) (*models.Session, *models.User, error)
}

// SessionMiddleware возвращает HTTP middleware, опознающее пользователя.
//
// failStatus задаёт код ответа при неудаче: исторически конечные точки
// /subscribe отвечают 403, а /subscription-status — 401.
func SessionMiddleware(parser TokenParser, sessions SessionRepository, log *slog.Logger, failStatus int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			reqLog := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			// Попытка 1: сессионный JWT из cookie.
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				claims, err := parser.ParseToken(cookie.Value)
				if err == nil {
					profile := models.UserProfile{
						UID:       claims.UID,
						Email:     claims.Email,
						Role:      claims.Role,
						FirstName: claims.FirstName,
						LastName:  claims.LastName,
					}
					next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), profile)))
					return
				}
				reqLog.Warn("invalid session cookie", sl.Err(err))
			}

			// Попытка 2: непрозрачный bearer-токен из заголовка.
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				reqLog.Error("missing session cookie and authorization header")
				w.WriteHeader(failStatus)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			session, user, err := sessions.GetSessionWithUser(r.Context(), tokenStr, time.Now().UTC())
			if err != nil {
				reqLog.Error("failed to look up session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal server error"))
				return
			}
			if session == nil {
				reqLog.Error("unknown or expired bearer token")
				w.WriteHeader(failStatus)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}

			// SubscriptionStatus намеренно не заполняется: его источником
			// служит конечная точка статуса, а не запись пользователя.
			profile := models.UserProfile{
				UID:       user.UID,
				Email:     user.Email,
				Role:      user.Role,
				Status:    user.Status,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), profile)))
		})
	}
}

func withIdentity(ctx context.Context, profile models.UserProfile) context.Context {
	ctx = context.WithValue(ctx, UserUID, profile.UID)
	ctx = context.WithValue(ctx, Role, profile.Role)
	return context.WithValue(ctx, Profile, profile)
}
