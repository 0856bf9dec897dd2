package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
)

// Pinger зависимость, которую стоит проверить. Пока это только redis.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log   *slog.Logger
	cache Pinger
}

// New cache может быть nil, если кэш сводок выключен.
func New(log *slog.Logger, cache Pinger) *Handler {
	return &Handler{log: log, cache: cache}
}

// ServeHTTP godoc
// @Summary Проверка работоспособности
// @Tags Service
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	body := map[string]string{"status": "ok"}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			// кэш необязателен, портал работает и без него
			h.log.Warn("cache ping failed", sl.Op(op), sl.Err(err))
			body["cache"] = "down"
		} else {
			body["cache"] = "ok"
		}
	}
	render.JSON(w, r, body)
}
