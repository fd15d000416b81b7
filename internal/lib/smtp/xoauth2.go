package smtp

import (
	"errors"
	"net/smtp"
)

// xoauth2Auth реализует SASL механизм XOAUTH2 для smtp.Client.
// Строка аутентификации собирается по формату Gmail:
// "user=<адрес>\x01auth=Bearer <access token>\x01\x01".
type xoauth2Auth struct {
	user        string
	accessToken string
}

// XOAuth2Auth возвращает smtp.Auth, выполняющий XOAUTH2 с готовым access токеном.
func XOAuth2Auth(user, accessToken string) smtp.Auth {
	return &xoauth2Auth{user: user, accessToken: accessToken}
}

func (a *xoauth2Auth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	resp := []byte("user=" + a.user + "\x01auth=Bearer " + a.accessToken + "\x01\x01")
	return "XOAUTH2", resp, nil
}

func (a *xoauth2Auth) Next(challenge []byte, more bool) ([]byte, error) {
	if more {
		// Сервер прислал описание ошибки, ответ должен быть пустым.
		if len(challenge) > 0 {
			return []byte(""), nil
		}
		return nil, errors.New("unexpected server challenge")
	}
	return nil, nil
}
