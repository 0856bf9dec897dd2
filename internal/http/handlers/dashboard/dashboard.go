// Package dashboard отдаёт сводку регистраций по сотрудникам для
// дашбордов администратора и сотрудника, а также её выгрузки.
package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/referral-portal/internal/export"
	"github.com/magabrotheeeer/referral-portal/internal/http/response"
	"github.com/magabrotheeeer/referral-portal/internal/lib/period"
	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
	"github.com/magabrotheeeer/referral-portal/internal/models"
)

// Service источник сводки
type Service interface {
	Summary(ctx context.Context, filter models.SummaryFilter) ([]models.StaffCount, error)
}

// Options отличия дашбордов администратора и сотрудника
type Options struct {
	// FilePrefix начало имени выгружаемого файла: Admin или Staff
	FilePrefix string
	// DefaultToday подставляет сегодняшнюю дату, если фильтры не заданы
	DefaultToday bool
	// Now источник текущего времени, по умолчанию time.Now
	Now func() time.Time
}

// Handler сводка и выгрузки одного дашборда.
type Handler struct {
	log      *slog.Logger
	svc      Service
	exporter *export.Exporter
	opts     Options
}

func New(log *slog.Logger, svc Service, exporter *export.Exporter, opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{log: log, svc: svc, exporter: exporter, opts: opts}
}

func (h *Handler) filter(r *http.Request, log *slog.Logger) models.SummaryFilter {
	filter := models.FilterFromQuery(r.URL.Query())
	if filter.IsEmpty() && h.opts.DefaultToday {
		filter.Date = period.Day(h.opts.Now())
	}
	// значения уходят в сервис как есть, здесь только предупреждение
	if filter.Date != "" && !period.IsDay(filter.Date) {
		log.Warn("unexpected date filter", slog.String("date", filter.Date))
	}
	if filter.Month != "" && !period.IsMonth(filter.Month) {
		log.Warn("unexpected month filter", slog.String("month", filter.Month))
	}
	return filter
}

// Summary godoc
// @Summary Сводка регистраций по сотрудникам
// @Tags Dashboard
// @Produce json
// @Param date query string false "День, YYYY-MM-DD"
// @Param month query string false "Месяц, YYYY-MM"
// @Success 200 {array} models.StaffCount
// @Router /admin/api/summary [get]
// @Router /staff/api/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.Summary"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := h.filter(r, log)
	rows, err := h.svc.Summary(r.Context(), filter)
	if err != nil {
		// дашборд показывает пустую таблицу вместо ошибки
		log.Error("failed to load summary", sl.Err(err))
		rows = nil
	}
	if rows == nil {
		rows = []models.StaffCount{}
	}

	log.Debug("summary served", slog.Int("rows", len(rows)))
	render.JSON(w, r, rows)
}

// Export возвращает обработчик выгрузки в формате f.
//
// @Summary Выгрузка сводки
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv,application/pdf
// @Param date query string false "День, YYYY-MM-DD"
// @Param month query string false "Месяц, YYYY-MM"
// @Success 200 {file} file
// @Failure 502 {object} response.Response
// @Router /admin/export.xlsx [get]
// @Router /admin/export.csv [get]
// @Router /admin/export.pdf [get]
func (h *Handler) Export(f export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.Export"
		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("format", string(f)),
		)

		filter := h.filter(r, log)
		rows, err := h.svc.Summary(r.Context(), filter)
		if err != nil {
			log.Error("failed to load summary", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error(response.MsgUnavailable))
			return
		}

		var buf bytes.Buffer
		if err := h.exporter.Write(&buf, f, rows); err != nil {
			log.Error("failed to build export", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.MsgInternal))
			return
		}

		name := export.Filename(h.opts.FilePrefix, h.opts.Now(), f)
		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if _, err := buf.WriteTo(w); err != nil {
			log.Warn("failed to write export", sl.Err(err))
			return
		}
		log.Info("export served", slog.Int("rows", len(rows)), slog.String("file", name))
	}
}

// Chart возвращает обработчик SVG-диаграммы сводки. Как и Summary,
// при ошибке сервиса рисует пустую диаграмму.
//
// @Summary Диаграмма сводки
// @Tags Dashboard
// @Produce image/svg+xml
// @Param date query string false "День, YYYY-MM-DD"
// @Param month query string false "Месяц, YYYY-MM"
// @Success 200 {file} file
// @Router /admin/chart/bar.svg [get]
// @Router /admin/chart/pie.svg [get]
func (h *Handler) Chart(kind export.ChartKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.Chart"
		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("chart", string(kind)),
		)

		rows, err := h.svc.Summary(r.Context(), h.filter(r, log))
		if err != nil {
			log.Error("failed to load summary", sl.Err(err))
			rows = nil
		}

		var buf bytes.Buffer
		if err := h.exporter.Chart(&buf, kind, rows); err != nil {
			log.Error("failed to draw chart", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.MsgInternal))
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := buf.WriteTo(w); err != nil {
			log.Warn("failed to write chart", sl.Err(err))
		}
	}
}
