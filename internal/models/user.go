// Package models содержит доменные типы портала: роль и сессию пользователя,
// заявку на регистрацию магазина и строки сводки по сотрудникам.
package models

// Role закрытое перечисление ролей. Всё, что не admin и не staff,
// считается анонимом.
type Role int

const (
	// RoleAnonymous роль отсутствует или неизвестна
	RoleAnonymous Role = iota
	// RoleAdmin администратор, видит общую сводку
	RoleAdmin
	// RoleStaff сотрудник, раздаёт реферальный QR-код
	RoleStaff
)

// DefaultUpstreamRole роль, которая выдаётся, если удалённый сервис
// не вернул поле role в ответе на вход.
const DefaultUpstreamRole = RoleStaff

// ParseRole переводит строковое значение из cookie или ответа сервиса в Role.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "staff":
		return RoleStaff
	default:
		return RoleAnonymous
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleStaff:
		return "staff"
	default:
		return ""
	}
}

// LandingPath возвращает стартовую страницу роли или пустую строку для анонима.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleStaff:
		return "/staff"
	default:
		return ""
	}
}

// Session набор утверждений о вошедшем пользователе.
// Token непрозрачный идентификатор пользователя из удалённого сервиса.
type Session struct {
	Token string
	Name  string
	Role  Role
}

// IsLoggedIn сессия считается действующей при непустом токене.
func (s Session) IsLoggedIn() bool {
	return s.Token != ""
}
