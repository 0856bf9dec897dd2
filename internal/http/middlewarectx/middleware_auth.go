// Package middlewarectx содержит HTTP middleware портала.
//
// AuthGate шлюз доступа: до любой логики страницы проверяет cookie сессии
// для защищённых префиксов /admin и /staff и при несовпадении роли
// перенаправляет на страницу входа. Остальные пути публичные.
package middlewarectx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/referral-portal/internal/metrics"
	"github.com/magabrotheeeer/referral-portal/internal/models"
	"github.com/magabrotheeeer/referral-portal/internal/session"
)

// Area класс пути по префиксу
type Area int

const (
	AreaPublic Area = iota
	AreaAdmin
	AreaStaff
)

// Защищённые префиксы
const (
	AdminPrefix = "/admin"
	StaffPrefix = "/staff"
)

func (a Area) String() string {
	switch a {
	case AreaAdmin:
		return "admin"
	case AreaStaff:
		return "staff"
	default:
		return "public"
	}
}

// RequiredRole роль, без которой в область не пустят. Для публичной
// области возвращает RoleAnonymous.
func (a Area) RequiredRole() models.Role {
	switch a {
	case AreaAdmin:
		return models.RoleAdmin
	case AreaStaff:
		return models.RoleStaff
	default:
		return models.RoleAnonymous
	}
}

// Allows проверяет сессию: нужен непустой токен и точное совпадение роли.
func (a Area) Allows(sess models.Session) bool {
	if a == AreaPublic {
		return true
	}
	return sess.IsLoggedIn() && sess.Role == a.RequiredRole()
}

// Classify относит путь к области. Префикс совпадает только по границе
// сегмента: /admin и /admin/... защищены, /administrator нет.
func Classify(path string) Area {
	switch {
	case hasSegmentPrefix(path, AdminPrefix):
		return AreaAdmin
	case hasSegmentPrefix(path, StaffPrefix):
		return AreaStaff
	default:
		return AreaPublic
	}
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// AuthGate возвращает middleware шлюза. Редирект идёт на loginPath без
// query и без адреса возврата. Состояние сессии шлюз не меняет.
// Пропущенный запрос несёт сессию в контексте (SessionFromContext).
func AuthGate(log *slog.Logger, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthGate"

			area := Classify(r.URL.Path)
			if area == AreaPublic {
				next.ServeHTTP(w, r)
				return
			}

			sess := session.Read(r)
			if !area.Allows(sess) {
				log.Info("access denied, redirecting to login",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("area", area.String()),
					slog.String("path", r.URL.Path),
					slog.Bool("has_token", sess.IsLoggedIn()),
				)
				metrics.GateRedirect(area.String())
				http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}
