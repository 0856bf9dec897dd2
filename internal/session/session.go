// Package session серверная, авторитетная копия сессии: три httpOnly cookie
// token, name и role. Именно её проверяет шлюз доступа. Копия в sessionStorage
// вкладки живёт отдельно (web/static/session.js) и для доступа не используется.
package session

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/referral-portal/internal/models"
)

// Имена cookie
const (
	CookieToken = "token"
	CookieName  = "name"
	CookieRole  = "role"
)

// DefaultTTL срок жизни cookie, семь дней
const DefaultTTL = 7 * 24 * time.Hour

// Cookies выпускает и гасит cookie сессии.
type Cookies struct {
	TTL    time.Duration
	Secure bool
}

// Read собирает сессию из cookie запроса. Отсутствующая cookie читается
// как пустое значение, неизвестная роль как аноним.
func Read(r *http.Request) models.Session {
	return models.Session{
		Token: value(r, CookieToken),
		Name:  value(r, CookieName),
		Role:  models.ParseRole(value(r, CookieRole)),
	}
}

// Write выставляет ровно три cookie сессии.
func (c Cookies) Write(w http.ResponseWriter, sess models.Session) {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	maxAge := int(ttl / time.Second)

	http.SetCookie(w, c.cookie(CookieToken, sess.Token, maxAge))
	http.SetCookie(w, c.cookie(CookieName, sess.Name, maxAge))
	http.SetCookie(w, c.cookie(CookieRole, sess.Role.String(), maxAge))
}

// Clear перезаписывает cookie пустыми значениями с немедленным истечением.
// Вызывать можно без действующей сессии.
func (c Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{CookieToken, CookieName, CookieRole} {
		http.SetCookie(w, c.cookie(name, "", -1))
	}
}

func (c Cookies) cookie(name, val string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func value(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
