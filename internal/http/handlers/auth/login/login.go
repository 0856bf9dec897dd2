// Package login реализует HTTP-обработчик входа.
//
// Логин и пароль уходят в удалённый сервис. При успехе выставляются три
// cookie сессии (token, name, role), при отказе возвращается 401 с
// сообщением сервиса.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/referral-portal/internal/http/response"
	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
	"github.com/magabrotheeeer/referral-portal/internal/registry"
	"github.com/magabrotheeeer/referral-portal/internal/session"
)

// Request входные данные для входа. Кроме наличия полей ничего не проверяется.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response успешный ответ. Утверждения сессии возвращаются в теле, чтобы
// клиент заполнил свой кэш вкладки.
type Response struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// Service описывает вход через удалённый сервис.
type Service interface {
	Login(ctx context.Context, username, password string) (*registry.LoginResult, error)
}

// Handler обрабатывает POST /api/login.
type Handler struct {
	log      *slog.Logger
	registry Service
	cookies  session.Cookies
	validate *validator.Validate
}

// New создает обработчик входа.
func New(log *slog.Logger, registry Service, cookies session.Cookies) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
		cookies:  cookies,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход сотрудника или администратора
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} Response
// @Failure 400 {object} response.Response "Некорректное тело запроса"
// @Failure 401 {object} response.Response "Сервис отказал во входе"
// @Failure 500 {object} response.Response "Ответ сервиса не JSON"
// @Failure 502 {object} response.Response "Сервис недоступен"
// @Router /api/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.MsgInvalidBody))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.registry.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, registry.ErrNotJSON):
		log.Error("registry returned non-JSON body", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgNotJSON))
		return
	case err != nil:
		log.Error("registry call failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.MsgUnavailable))
		return
	}

	if !res.Success {
		log.Info("login rejected", slog.String("username", req.Username))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(res.Message))
		return
	}

	sess := res.Session()
	h.cookies.Write(w, sess)

	log.Info("login success",
		slog.String("username", req.Username),
		slog.String("role", sess.Role.String()),
	)
	render.JSON(w, r, Response{
		Success: true,
		UserID:  sess.Token,
		Name:    sess.Name,
		Role:    sess.Role.String(),
	})
}

// MethodNotAllowed отвечает на GET /api/login.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, response.Error(response.MsgMethodNotAllowed))
}
