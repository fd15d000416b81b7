// Package subscriptionservice предоставляет маршруты сервиса подписок.
package subscriptionservice

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	adminlist "github.com/iulcalcpro/subscription-service/internal/http/handlers/admin/list"
	"github.com/iulcalcpro/subscription-service/internal/http/handlers/health"
	"github.com/iulcalcpro/subscription-service/internal/http/handlers/subscription/sessionstatus"
	"github.com/iulcalcpro/subscription-service/internal/http/handlers/subscription/status"
	"github.com/iulcalcpro/subscription-service/internal/http/handlers/subscription/subscribe"
	"github.com/iulcalcpro/subscription-service/internal/http/middlewarectx"
	"github.com/iulcalcpro/subscription-service/internal/lib/jwt"
	subservice "github.com/iulcalcpro/subscription-service/internal/services/subscription"
	"github.com/iulcalcpro/subscription-service/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Конечные точки /subscribe исторически отвечают 403 неавторизованным
// запросам, /subscription-status и админский отчёт — 401.
func RegisterRoutes(r chi.Router, logger *slog.Logger, subscriptionService *subservice.SubscriptionService, storage *repository.Storage, jwtMaker jwt.Maker, production bool) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Оформление и чтение подписки
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(jwtMaker, storage, logger, http.StatusForbidden))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/subscribe", subscribe.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscribe", status.New(logger, subscriptionService).ServeHTTP)
	})

	// Статус с фиксацией переходов
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(jwtMaker, storage, logger, http.StatusUnauthorized))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/subscription-status", sessionstatus.New(logger, subscriptionService, production).ServeHTTP)
	})

	// Админский отчёт
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(jwtMaker, storage, logger, http.StatusUnauthorized))
		r.Use(middlewarectx.AdminMiddleware(logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/admin/subscriptions", adminlist.New(logger, subscriptionService).ServeHTTP)
	})

	r.Get("/health", health.New(logger, storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
