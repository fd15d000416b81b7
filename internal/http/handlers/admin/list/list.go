// Package list реализует HTTP-обработчик административного отчёта
// по подпискам. Доступ ограничивается middleware ролей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/iulcalcpro/subscription-service/internal/http/response"
	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
	"github.com/iulcalcpro/subscription-service/internal/models"
)

// Handler управляет HTTP-запросами административного отчёта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс построения отчёта по подпискам.
type Service interface {
	ListSubscriptions(ctx context.Context) ([]models.SubscriptionSummary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отчёт по подпискам
// @Description Возвращает все подписки с данными владельцев и остатком дней пробного периода, новые записи первыми.
// @Tags Admin
// @Produce  json
// @Success 200 {array} models.SubscriptionSummary "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summaries, err := h.service.ListSubscriptions(r.Context())
	if err != nil {
		log.Error("failed to fetch subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch subscriptions"))
		return
	}

	log.Info("subscriptions listed", slog.Int("count", len(summaries)))
	render.JSON(w, r, summaries)
}
