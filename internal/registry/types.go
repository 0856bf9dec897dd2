package registry

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/magabrotheeeer/referral-portal/internal/models"
)

// Операции удалённого сервиса, они же значения поля action
const (
	OpLogin    = "login"
	OpRegister = "register"
	OpSummary  = "summary"
)

// LoginRequest тело запроса на вход
type LoginRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult ответ сервиса на вход.
type LoginResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	UserID  flexValue `json:"userId"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
}

// Session собирает утверждения сессии из ответа. Если сервис не прислал
// роль, выдаётся models.DefaultUpstreamRole.
func (r LoginResult) Session() models.Session {
	role := models.DefaultUpstreamRole
	if r.Role != "" {
		role = models.ParseRole(r.Role)
	}
	return models.Session{
		Token: string(r.UserID),
		Name:  r.Name,
		Role:  role,
	}
}

// flexValue строка, которую таблица может прислать и числом. Прочие
// JSON-значения сохраняются текстом.
type flexValue string

func (v *flexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = flexValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// true, объект, массив: берём JSON-текст как есть, вход не роняем
		*v = flexValue(data)
		return nil
	}
	if i, err := n.Int64(); err == nil {
		*v = flexValue(strconv.FormatInt(i, 10))
		return nil
	}
	*v = flexValue(n.String())
	return nil
}
