// Package subscriptionservice собирает сервис подписок: хранилище,
// миграции, почтовый транспорт, бизнес-логику и HTTP-сервер.
package subscriptionservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/iulcalcpro/subscription-service/internal/config"
	"github.com/iulcalcpro/subscription-service/internal/lib/jwt"
	"github.com/iulcalcpro/subscription-service/internal/lib/smtp"
	"github.com/iulcalcpro/subscription-service/internal/migrations"
	senderservice "github.com/iulcalcpro/subscription-service/internal/services/sender"
	subservice "github.com/iulcalcpro/subscription-service/internal/services/subscription"
	"github.com/iulcalcpro/subscription-service/internal/storage/repository"
)

// App объединяет HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создаёт приложение: подключается к базе, применяет миграции,
// один раз собирает почтовый транспорт и регистрирует маршруты.
// Некорректные реквизиты почты обнаруживаются здесь, а не при первой
// отправке письма.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	transport, err := smtp.New(ctx, cfg.Mail, logger)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	senderService := senderservice.NewSenderService(transport, logger)
	subscriptionService := subservice.NewSubscriptionService(db, senderService, cfg.Mail.AdminEmail, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, subscriptionService, db, jwtMaker, cfg.IsProduction())

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
