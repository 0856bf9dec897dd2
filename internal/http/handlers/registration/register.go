// Package registration принимает заявку магазина и целиком передаёт её
// в удалённый сервис. Портал заявку не хранит.
package registration

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/referral-portal/internal/http/response"
	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
	"github.com/magabrotheeeer/referral-portal/internal/models"
	"github.com/magabrotheeeer/referral-portal/internal/registry"
)

// SubmissionHeader заголовок с идентификатором заявки для сверки логов
const SubmissionHeader = "X-Submission-ID"

// Service описывает отправку заявки.
type Service interface {
	Register(ctx context.Context, reg models.Registration) (json.RawMessage, error)
}

// Handler обрабатывает POST /api/register.
type Handler struct {
	log      *slog.Logger
	registry Service
	validate *validator.Validate
}

func New(log *slog.Logger, registry Service) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Заявка на регистрацию магазина
// @Tags Registration
// @Accept json,mpfd
// @Produce json
// @Param request body models.Registration true "Заявка"
// @Success 200 {object} map[string]any "Ответ сервиса без изменений"
// @Failure 400 {object} response.Response "Не заполнены обязательные поля"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.register"

	submissionID := uuid.NewString()
	w.Header().Set(SubmissionHeader, submissionID)

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("submission_id", submissionID),
	)

	reg, err := decode(r)
	if err != nil {
		log.Error("failed to decode registration", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternal))
		return
	}

	reg.Action = models.ActionRegister
	reg.StoreImage = stripDataURL(reg.StoreImage)
	reg.IDCardImage = stripDataURL(reg.IDCardImage)

	if err := h.validate.Struct(reg); err != nil {
		log.Info("registration incomplete", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	log.Info("forwarding registration",
		slog.String("shop", reg.Name),
		slog.String("referrer", reg.Referrer),
	)

	raw, err := h.registry.Register(r.Context(), reg)
	switch {
	case errors.Is(err, registry.ErrNotJSON):
		log.Error("registry returned non-JSON body", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInvalidRegistry))
		return
	case err != nil:
		log.Error("registry call failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternal))
		return
	}

	render.JSON(w, r, raw)
}
