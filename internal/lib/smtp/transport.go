package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/iulcalcpro/subscription-service/internal/config"
	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
)

// Transport реализует SMTP транспорт с аутентификацией Gmail OAuth2.
// Создаётся один раз при старте приложения: реквизиты проверяются в
// конструкторе, access токены обновляются через oauth2.TokenSource
// по мере истечения.
type Transport struct {
	cfg    config.Mail
	log    *slog.Logger
	tokens oauth2.TokenSource
}

// smtpClientWrapper обертка для *smtp.Client, реализующая интерфейс Client.
type smtpClientWrapper struct {
	client *smtp.Client
}

func (w *smtpClientWrapper) Mail(from string) error {
	return w.client.Mail(from)
}

func (w *smtpClientWrapper) Rcpt(to string) error {
	return w.client.Rcpt(to)
}

func (w *smtpClientWrapper) Data() (io.WriteCloser, error) {
	return w.client.Data()
}

func (w *smtpClientWrapper) Quit() error {
	return w.client.Quit()
}

func (w *smtpClientWrapper) Close() error {
	return w.client.Close()
}

// New создает новый экземпляр Transport. Возвращает ошибку,
// если хотя бы один из обязательных реквизитов почты не задан.
func New(ctx context.Context, cfg config.Mail, log *slog.Logger) (*Transport, error) {
	const op = "smtp.New"

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" ||
		cfg.GoogleRefreshToken == "" || cfg.SMTPUser == "" {
		return nil, fmt.Errorf("%s: missing required mail credentials", op)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"https://mail.google.com/"},
	}
	// ReuseTokenSource кеширует access токен и сам обменивает refresh
	// токен при истечении.
	tokens := oauth2.ReuseTokenSource(nil, oauthCfg.TokenSource(ctx, &oauth2.Token{
		RefreshToken: cfg.GoogleRefreshToken,
	}))

	return &Transport{cfg: cfg, log: log, tokens: tokens}, nil
}

// Connect устанавливает соединение с SMTP сервером и проходит XOAUTH2
// аутентификацию со свежим access токеном.
func (t *Transport) Connect() (Client, error) {
	token, err := t.tokens.Token()
	if err != nil {
		t.log.Error("failed to obtain access token", sl.Err(err))
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	addr := t.cfg.SMTPHost + ":" + t.cfg.SMTPPort

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.log.Error("failed to dial SMTP server", sl.Err(err))
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		t.log.Error("failed to create SMTP client", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	tlsConfig := &tls.Config{
		ServerName: t.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	ok, _ := client.Extension("STARTTLS")
	if !ok {
		t.log.Error("SMTP server does not support STARTTLS")
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp server does not support STARTTLS")
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		t.log.Error("failed to start TLS", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}

	if err = client.Auth(XOAuth2Auth(t.cfg.SMTPUser, token.AccessToken)); err != nil {
		t.log.Error("smtp auth failed", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp auth failed: %w", err)
	}

	return &smtpClientWrapper{client: client}, nil
}

// SenderAddress возвращает адрес отправителя.
func (t *Transport) SenderAddress() string {
	return t.cfg.SMTPUser
}
