// Package registry клиент удалённого сервиса регистрации (скрипты поверх
// таблицы). Сервис принимает {action, ...поля} и отвечает {success, message, ...};
// всё постоянное состояние живёт там.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/magabrotheeeer/referral-portal/internal/metrics"
	"github.com/magabrotheeeer/referral-portal/internal/models"
)

const maxResponseBytes = 4 << 20

// Endpoints адреса скриптов, у каждой операции свой
type Endpoints struct {
	Login    string
	Register string
	Summary  string
}

// Client HTTP-клиент удалённого сервиса
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
}

// NewClient создаёт клиента. Таймаут ограничивает каждый вызов целиком,
// зависший сервис не держит запрос бесконечно.
func NewClient(endpoints Endpoints, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login обменивает логин и пароль на ответ сервиса. Отказ в доступе
// (success=false) ошибкой не считается, его разбирает обработчик.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "registry.Login"

	req, err := c.newJSONRequest(ctx, c.endpoints.Login, LoginRequest{
		Action:   OpLogin,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var res LoginResult
	if err := c.do(req, OpLogin, &res, func() string {
		if res.Success {
			return metrics.OutcomeOK
		}
		return metrics.OutcomeRejected
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}

// Register отправляет заявку целиком и возвращает ответ сервиса как есть.
func (c *Client) Register(ctx context.Context, reg models.Registration) (json.RawMessage, error) {
	const op = "registry.Register"

	req, err := c.newJSONRequest(ctx, c.endpoints.Register, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var raw json.RawMessage
	if err := c.do(req, OpRegister, &raw, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return raw, nil
}

// Summary запрашивает сводку регистраций по сотрудникам. Фильтры уходят
// в query без изменений, пустые не передаются.
func (c *Client) Summary(ctx context.Context, filter models.SummaryFilter) ([]models.StaffCount, error) {
	const op = "registry.Summary"

	u, err := url.Parse(c.endpoints.Summary)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	q := u.Query()
	for k, vs := range filter.Values() {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := []models.StaffCount{}
	if err := c.do(req, OpSummary, &rows, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func (c *Client) newJSONRequest(ctx context.Context, endpoint string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do выполняет запрос и разбирает тело в out. Статус ответа не проверяется:
// сервис сообщает о результате полем success, а не кодом.
func (c *Client) do(req *http.Request, operation string, out any, outcome func() string) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveRegistry(operation, metrics.OutcomeUnavailable, time.Since(start))
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.ObserveRegistry(operation, metrics.OutcomeUnavailable, time.Since(start))
		return errors.Join(ErrUnavailable, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.ObserveRegistry(operation, metrics.OutcomeBadResponse, time.Since(start))
		return errors.Join(ErrNotJSON, err)
	}

	result := metrics.OutcomeOK
	if outcome != nil {
		result = outcome()
	}
	metrics.ObserveRegistry(operation, result, time.Since(start))
	return nil
}
