// Package services содержит бизнес-логику жизненного цикла подписки:
// активацию пробного периода, смену плана, переход на оплаченный план
// и вычисление текущего статуса подписки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
	"github.com/iulcalcpro/subscription-service/internal/models"
)

// Длительность пробного периода с момента первой активации.
const trialDuration = 60 * 24 * time.Hour

// redirectAfterSubscribe — адрес, на который фронтенд уводит
// пользователя после успешного оформления.
const redirectAfterSubscribe = "/dashboard/home?success=true"

// Ошибки бизнес-логики, транслируемые обработчиками в HTTP-статусы.
var (
	// ErrInvalidPlan — запрошен план вне множества trial|monthly|annual.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrUserNotFound — пользователь с таким UID не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrTrialExpired — попытка повторно войти в пробный период после его истечения.
	ErrTrialExpired = errors.New("trial expired")
)

// SubscriptionRepository определяет методы хранилища, используемые движком подписок.
type SubscriptionRepository interface {
	// GetUser возвращает пользователя по UID, nil если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetTrialToken возвращает пробный токен пользователя, nil если не выдавался.
	GetTrialToken(ctx context.Context, userUID string) (*models.TrialToken, error)
	// ActivateTrial атомарно создаёт подписку trialing и пробный токен.
	ActivateTrial(ctx context.Context, userUID, plan string, start, renewal time.Time, token string) (string, error)
	// UpdatePlan меняет только тип плана существующей подписки.
	UpdatePlan(ctx context.Context, userUID, plan string) (int, error)
	// ActivatePaid создаёт или переводит подписку в бессрочный статус active.
	ActivatePaid(ctx context.Context, userUID, plan string, start time.Time) (string, error)
	// GetSubscriptionWithSales возвращает подписку с количеством продаж, nil если нет.
	GetSubscriptionWithSales(ctx context.Context, userUID string) (*models.SubscriptionWithSales, error)
	// UpdateStatus выставляет подписке новый статус.
	UpdateStatus(ctx context.Context, userUID, status string) (int, error)
	// ListSubscriptionsWithUsers возвращает все подписки с владельцами.
	ListSubscriptionsWithUsers(ctx context.Context) ([]*models.SubscriptionWithUser, error)
	// CreateEmailLog фиксирует попытку отправки письма.
	CreateEmailLog(ctx context.Context, entry models.EmailLog) error
}

// Mailer описывает сервис отправки писем.
type Mailer interface {
	Send(to []string, subject, body string) error
	SendHTML(to []string, subject, body string) error
}

// SubscriptionService реализует движок состояний подписки.
type SubscriptionService struct {
	repo       SubscriptionRepository
	mailer     Mailer
	adminEmail string
	log        *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, mailer Mailer, adminEmail string, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:       repo,
		mailer:     mailer,
		adminEmail: adminEmail,
		log:        log,
	}
}

// SubscribeResult — результат операции оформления подписки.
type SubscribeResult struct {
	Created  bool   // Создана новая пробная подписка (HTTP 201)
	Message  string // Сообщение для пользователя
	Redirect string // Адрес перенаправления для фронтенда
}

// Subscribe выполняет оформление подписки на запрошенный план.
//
// Первый вызов для пользователя активирует 60-дневный пробный период.
// Пока пробный период не истёк, повторные вызовы лишь меняют план.
// После истечения допускается только переход на оплаченный план —
// без проверки оплаты, платёжный шлюз сознательно отсутствует.
func (s *SubscriptionService) Subscribe(ctx context.Context, userUID, plan string) (*SubscribeResult, error) {
	if !models.ValidPlan(plan) {
		return nil, ErrInvalidPlan
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	trialToken, err := s.repo.GetTrialToken(ctx, userUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Первый вызов: пробный период ещё не выдавался.
	if trialToken == nil {
		renewal := now.Add(trialDuration)
		subscriptionID, err := s.repo.ActivateTrial(ctx, userUID, plan, now, renewal, uuid.NewString())
		if err != nil {
			return nil, err
		}
		s.log.Info("trial activated",
			slog.String("user_uid", userUID), slog.String("plan", plan))

		s.notify(ctx, userUID, &subscriptionID, models.EmailTypeTrialAdmin,
			s.adminEmail, "New Trial Activated",
			fmt.Sprintf("User: %s (%s)\nPlan: %s", user.FullName(), user.Email, plan), false)
		s.notify(ctx, userUID, &subscriptionID, models.EmailTypeTrialUser,
			user.Email, "Welcome! Your 60-day Trial is Active",
			fmt.Sprintf("<p>Hi %s,</p>\n<p>Your 60-day trial of IUL Calculator Pro is now active.</p>\n<p>Enjoy full access!</p>\n<p>– The Team</p>", user.FirstName), true)

		return &SubscribeResult{
			Created:  true,
			Message:  "Trial activated",
			Redirect: redirectAfterSubscribe,
		}, nil
	}

	// Пробный период ещё идёт: смена плана бесплатна, статус и дата
	// окончания не меняются.
	if !trialToken.Expired(now) {
		if _, err := s.repo.UpdatePlan(ctx, userUID, plan); err != nil {
			return nil, err
		}
		s.log.Info("plan changed during trial",
			slog.String("user_uid", userUID), slog.String("plan", plan))
		return &SubscribeResult{
			Message:  "Plan changed to " + plan,
			Redirect: redirectAfterSubscribe,
		}, nil
	}

	// Пробный период истёк: допустим только оплаченный план.
	if plan != models.PlanTrial {
		subscriptionID, err := s.repo.ActivatePaid(ctx, userUID, plan, now)
		if err != nil {
			return nil, err
		}
		s.log.Info("paid plan activated",
			slog.String("user_uid", userUID), slog.String("plan", plan))

		s.notify(ctx, userUID, &subscriptionID, models.EmailTypePaidAdmin,
			s.adminEmail, "New Paid Subscription",
			fmt.Sprintf("User switched to paid\n%s (%s)\nPlan: %s", user.FullName(), user.Email, plan), false)

		return &SubscribeResult{
			Message:  "Subscription activated",
			Redirect: redirectAfterSubscribe,
		}, nil
	}

	return nil, ErrTrialExpired
}

// notify отправляет письмо и фиксирует попытку в журнале. Неудача
// отправки или записи журнала не прерывает бизнес-операцию.
func (s *SubscriptionService) notify(ctx context.Context, userUID string, subscriptionID *string,
	emailType, recipient, subject, body string, html bool) {
	var err error
	if html {
		err = s.mailer.SendHTML([]string{recipient}, subject, body)
	} else {
		err = s.mailer.Send([]string{recipient}, subject, body)
	}

	status := models.EmailStatusSent
	if err != nil {
		status = models.EmailStatusFailed
		s.log.Warn("notification email failed",
			slog.String("email_type", emailType), slog.String("recipient", recipient), sl.Err(err))
	}

	if logErr := s.repo.CreateEmailLog(ctx, models.EmailLog{
		UserUID:        userUID,
		SubscriptionID: subscriptionID,
		EmailType:      emailType,
		Recipient:      recipient,
		Subject:        subject,
		Status:         status,
		SentAt:         time.Now().UTC(),
	}); logErr != nil {
		s.log.Warn("failed to write email log", sl.Err(logErr))
	}
}
