// Package services содержит сервис отправки транзакционных писем.
//
// SenderService собирает MIME-сообщение и отправляет его через SMTP
// транспорт. Отправка всегда синхронная и рассматривается вызывающей
// стороной как best-effort: неудача фиксируется в журнале, но не
// отменяет бизнес-операцию.
package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/iulcalcpro/subscription-service/internal/lib/sl"
	"github.com/iulcalcpro/subscription-service/internal/lib/smtp"
)

// senderName — отображаемое имя отправителя во всех письмах сервиса.
const senderName = "IUL Calculator Pro"

// SenderService отправляет письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// Send отправляет текстовое письмо указанным получателям.
func (s *SenderService) Send(to []string, subject, bodyText string) error {
	return s.sendEmail(to, subject, bodyText, "text/plain")
}

// SendHTML отправляет письмо с HTML-содержимым указанным получателям.
func (s *SenderService) SendHTML(to []string, subject, bodyHTML string) error {
	return s.sendEmail(to, subject, bodyHTML, "text/html")
}

func (s *SenderService) sendEmail(to []string, subject, body, contentType string) error {
	from := fmt.Sprintf("%q <%s>", senderName, s.transport.SenderAddress())
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType + "; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.SenderAddress()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.SenderAddress()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to), slog.String("subject", subject))
	return nil
}
