// Package pages серверные HTML-страницы портала. Доступ к /admin и /staff
// уже проверен шлюзом, здесь сессия только отображается.
package pages

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/staff"
	"github.com/magabrotheeeer/referral-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/referral-portal/internal/lib/period"
	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
	"github.com/magabrotheeeer/referral-portal/internal/models"
	"github.com/magabrotheeeer/referral-portal/internal/session"
)

// Data данные для шаблонов
type Data struct {
	// ServerRole роль из cookie, login.js сверяет с ней копию вкладки
	ServerRole   string
	Session      models.Session
	Ref          string
	ReferralLink string
	Filter       models.SummaryFilter
	SummaryAPI   string
	ExportBase   string
	// ChartBase префикс диаграмм, к нему добавляется /bar.svg или /pie.svg
	ChartBase string
}

type Handler struct {
	log         *slog.Logger
	renderer    *Renderer
	registerURL string
	now         func() time.Time
}

func New(log *slog.Logger, renderer *Renderer, registerURL string) *Handler {
	return &Handler{log: log, renderer: renderer, registerURL: registerURL, now: time.Now}
}

func (h *Handler) session(r *http.Request) models.Session {
	if sess, ok := middlewarectx.SessionFromContext(r.Context()); ok {
		return sess
	}
	return session.Read(r)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data Data) {
	sess := h.session(r)
	data.Session = sess
	if sess.IsLoggedIn() {
		data.ServerRole = sess.Role.String()
	}

	if err := h.renderer.Render(w, status, page, data); err != nil {
		h.log.Error("failed to render page",
			slog.String("op", "handlers.pages.render"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("page", page),
			sl.Err(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Login вошедшего пользователя сразу отправляет на страницу его роли по
// cookie. Копия сессии во вкладке на выбор не влияет, поэтому вкладка
// со старой ролью не зациклится между /login и шлюзом.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sess := session.Read(r)
	if target := sess.Role.LandingPath(); sess.IsLoggedIn() && target != "" {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, PageLogin, Data{})
}

// Register страница регистрации магазина, ref из ссылки сотрудника
// становится кодом пригласившего.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, PageRegister, Data{Ref: r.URL.Query().Get("ref")})
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, PageAdminDashboard, Data{
		Filter:     models.FilterFromQuery(r.URL.Query()),
		SummaryAPI: "/admin/api/summary",
		ExportBase: "/admin/export",
		ChartBase:  "/admin/chart",
	})
}

func (h *Handler) Staff(w http.ResponseWriter, r *http.Request) {
	link, err := staff.ReferralLink(h.registerURL, h.session(r).Token)
	if err != nil {
		h.log.Warn("bad referral register url", slog.String("url", h.registerURL), sl.Err(err))
	}
	h.render(w, r, http.StatusOK, PageStaff, Data{ReferralLink: link})
}

func (h *Handler) StaffDashboard(w http.ResponseWriter, r *http.Request) {
	filter := models.FilterFromQuery(r.URL.Query())
	if filter.IsEmpty() {
		filter.Date = period.Day(h.now())
	}
	h.render(w, r, http.StatusOK, PageStaffDashboard, Data{
		Filter:     filter,
		SummaryAPI: "/staff/api/summary",
		ExportBase: "/staff/export",
		ChartBase:  "/staff/chart",
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, PageNotFound, Data{})
}
