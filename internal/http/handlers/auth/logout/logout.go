// Package logout реализует выход: гасит cookie сессии локально, без
// обращения к удалённому сервису.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/referral-portal/internal/http/response"
	"github.com/magabrotheeeer/referral-portal/internal/session"
)

// Handler обрабатывает POST /api/logout.
type Handler struct {
	log     *slog.Logger
	cookies session.Cookies
}

func New(log *slog.Logger, cookies session.Cookies) *Handler {
	return &Handler{log: log, cookies: cookies}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)

	h.log.Info("session cleared",
		slog.String("op", "handlers.auth.logout"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Bool("had_session", session.Read(r).IsLoggedIn()),
	)
	render.JSON(w, r, response.OK())
}
