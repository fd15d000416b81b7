// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов и ошибок в едином формате.
package response

// Message описывает ответ бизнес-операции с человеко-читаемым сообщением
// и адресом перенаправления для фронтенда.
type Message struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// ErrorResponse — структура ошибки, возвращаемая всеми обработчиками.
// Используется также в Swagger-аннотациях как возвращаемый тип ошибки.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// OK возвращает Message с текстом и адресом перенаправления.
func OK(msg, redirect string) Message {
	return Message{
		Message:  msg,
		Redirect: redirect,
	}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Error: msg,
	}
}
