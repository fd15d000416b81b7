// Package sessionstatus реализует HTTP-обработчик статуса подписки
// с побочными эффектами.
//
// В отличие от чистой проекции обработчик фиксирует вычисленный переход
// в хранилище: истёкший пробный период переводится в expired, владельцу
// подтверждённой продажи выдаётся active. Вычисленный статус дублируется
// в cookie subscription-status со сроком жизни один час.
package sessionstatus

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/iulcalcpro/subscription-service/internal/http/middlewarectx"
	"github.com/iulcalcpro/subscription-service/internal/http/response"
	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
)

// CookieName — имя cookie со статусом подписки.
const CookieName = "subscription-status"

// cookieMaxAge — срок жизни cookie в секундах.
const cookieMaxAge = 3600

// Handler управляет HTTP-запросами статуса подписки с фиксацией переходов.
type Handler struct {
	log           *slog.Logger
	service       Service
	secureCookies bool // Secure-флаг cookie, включён в production
}

// Service описывает интерфейс вычисления статуса с побочными эффектами.
type Service interface {
	StatusWithSideEffects(ctx context.Context, userUID string) (string, error)
}

// New создает новый Handler. secureCookies включает Secure-флаг cookie.
func New(log *slog.Logger, service Service, secureCookies bool) *Handler {
	return &Handler{log: log, service: service, secureCookies: secureCookies}
}

// Response — статус подписки для клиента.
type Response struct {
	Status string `json:"status"`
}

// ServeHTTP godoc
// @Summary Статус подписки с фиксацией переходов
// @Description Вычисляет статус подписки, сохраняет переход в хранилище и дублирует статус в cookie.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} sessionstatus.Response "Статус подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription-status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.sessionstatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	status, err := h.service.StatusWithSideEffects(r.Context(), userUID)
	if err != nil {
		log.Error("failed to fetch subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch subscription"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    status,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("subscription status resolved",
		slog.String("user_uid", userUID),
		slog.String("status", status))
	render.JSON(w, r, Response{Status: status})
}
