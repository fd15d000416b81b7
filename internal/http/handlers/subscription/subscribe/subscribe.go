// Package subscribe реализует HTTP-обработчик оформления подписки.
//
// Handler принимает JSON-запрос с запрошенным планом, валидирует его,
// извлекает идентификатор пользователя из контекста и вызывает движок
// состояний подписки. Первая активация пробного периода отвечает 201,
// смена плана и переход на оплаченный план — 200.
package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/iulcalcpro/subscription-service/internal/http/middlewarectx"
	"github.com/iulcalcpro/subscription-service/internal/http/response"
	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
	"github.com/iulcalcpro/subscription-service/internal/models"
	services "github.com/iulcalcpro/subscription-service/internal/services/subscription"
)

// Handler управляет HTTP-запросами на оформление подписки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Движок состояний подписки
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Subscribe(ctx context.Context, userUID, plan string) (*services.SubscribeResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить подписку
// @Description Активирует пробный период при первом вызове, меняет план во время пробного периода, переводит на оплаченный план после его истечения.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.SubscribeRequest true "Запрошенный план"
// @Success 200 {object} response.Message "План изменён или оплаченный план активирован"
// @Success 201 {object} response.Message "Пробный период активирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный план или истёкший пробный период"
// @Failure 403 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.subscribe"
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

	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid plan"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid plan"))
		return
	}

	result, err := h.service.Subscribe(r.Context(), userUID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPlan):
			log.Error("invalid plan", slog.String("plan", req.Plan))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid plan"))
		case errors.Is(err, services.ErrUserNotFound):
			log.Error("user not found", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
		case errors.Is(err, services.ErrTrialExpired):
			log.Info("trial expired, paid plan required", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Trial expired – choose a paid plan"))
		default:
			log.Error("failed to process subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not process subscription"))
		}
		return
	}

	log.Info("subscribe processed",
		slog.String("user_uid", userUID),
		slog.String("plan", req.Plan),
		slog.Bool("created", result.Created))

	if result.Created {
		w.WriteHeader(http.StatusCreated)
	}
	render.JSON(w, r, response.OK(result.Message, result.Redirect))
}
