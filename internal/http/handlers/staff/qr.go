// Package staff реферальный QR-код сотрудника. Код ведёт на страницу
// регистрации с токеном сотрудника в параметре ref.
package staff

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/middleware"
	"github.com/skip2/go-qrcode"

	"github.com/magabrotheeeer/referral-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
	"github.com/magabrotheeeer/referral-portal/internal/session"
)

const qrSize = 256

// ReferralLink добавляет ref=<token> к адресу страницы регистрации,
// сохраняя уже имеющиеся параметры.
func ReferralLink(registerURL, token string) (string, error) {
	u, err := url.Parse(registerURL)
	if err != nil {
		return "", fmt.Errorf("parse register url: %w", err)
	}
	q := u.Query()
	q.Set("ref", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// QRHandler отдаёт PNG с реферальной ссылкой вошедшего сотрудника.
type QRHandler struct {
	log         *slog.Logger
	registerURL string
}

func NewQR(log *slog.Logger, registerURL string) *QRHandler {
	return &QRHandler{log: log, registerURL: registerURL}
}

// ServeHTTP godoc
// @Summary Реферальный QR-код сотрудника
// @Tags Staff
// @Produce png
// @Success 200 {file} file
// @Router /staff/qr.png [get]
func (h *QRHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.staff.qr"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		sess = session.Read(r)
	}

	link, err := ReferralLink(h.registerURL, sess.Token)
	if err != nil {
		log.Error("failed to build referral link", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		log.Error("failed to encode qr", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = w.Write(png)
}
