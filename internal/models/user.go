// Package models содержит доменные структуры сервиса подписок:
// пользователей, подписки, пробные токены, журналы писем и сессии.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
// Учётные записи создаются внешним сервисом регистрации, здесь
// запись доступна только для чтения.
type User struct {
	UID         string // Уникальный идентификатор пользователя
	Email       string // Электронная почта
	FirstName   string // Имя
	LastName    string // Фамилия
	Role        string // Роль пользователя, admin или user
	ForeverFree bool   // Признак бессрочного бесплатного доступа
	Status      string // Статус учётной записи
}

// FullName возвращает отображаемое имя пользователя.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return ""
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
