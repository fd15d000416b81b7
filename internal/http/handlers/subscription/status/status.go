// Package status реализует HTTP-обработчик чтения состояния подписки.
//
// Обработчик возвращает чистую проекцию: вычисленный статус, тип плана,
// дату окончания и число подтверждённых продаж. В хранилище ничего не
// пишется.
package status

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/iulcalcpro/subscription-service/internal/http/middlewarectx"
	"github.com/iulcalcpro/subscription-service/internal/http/response"
	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
	"github.com/iulcalcpro/subscription-service/internal/models"
	services "github.com/iulcalcpro/subscription-service/internal/services/subscription"
)

// Handler управляет HTTP-запросами на чтение состояния подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения состояния подписки.
type Service interface {
	Status(ctx context.Context, userUID string) (*services.StatusInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Response — проекция состояния подписки для клиента. endDate равен
// null у оплаченной подписки без даты окончания.
type Response struct {
	Status        string  `json:"status"`
	PlanType      string  `json:"planType"`
	EndDate       *string `json:"endDate"`
	IulSalesCount int     `json:"iulSalesCount"`
}

// NoneResponse — ответ для пользователя без подписки.
type NoneResponse struct {
	Status string `json:"status"`
}

// ServeHTTP godoc
// @Summary Состояние подписки
// @Description Возвращает вычисленный статус подписки текущего пользователя без записи в хранилище.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} status.Response "Состояние подписки"
// @Failure 403 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribe [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	info, err := h.service.Status(r.Context(), userUID)
	if err != nil {
		log.Error("failed to fetch subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch subscription"))
		return
	}

	if info.Status == models.StatusNone {
		render.JSON(w, r, NoneResponse{Status: models.StatusNone})
		return
	}

	resp := Response{
		Status:        info.Status,
		PlanType:      info.PlanType,
		IulSalesCount: info.IulSalesCount,
	}
	if info.EndDate != nil {
		formatted := info.EndDate.UTC().Format(time.RFC3339)
		resp.EndDate = &formatted
	}

	log.Info("subscription status fetched",
		slog.String("user_uid", userUID),
		slog.String("status", info.Status))
	render.JSON(w, r, resp)
}
