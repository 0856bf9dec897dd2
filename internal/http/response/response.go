// Package response содержит единый формат JSON-ответов API портала:
// {"success": bool, "message": string}. Такой же конверт использует
// удалённый сервис, поэтому сообщения от него передаются клиенту без обработки.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response стандартный ответ API.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Фиксированные сообщения об ошибках. Детали внутренних ошибок наружу не уходят.
const (
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgInternal         = "Internal server error"
	MsgNotJSON          = "Response is not JSON"
	MsgUnavailable      = "registry unavailable"
	MsgInvalidBody      = "invalid request body"
	MsgInvalidRegistry  = "Invalid response from registry"
)

// OK успешный ответ без данных
func OK() Response {
	return Response{Success: true}
}

// Error ответ с ошибкой и сообщением
func Error(msg string) Response {
	return Response{Success: false, Message: msg}
}

// ValidationError собирает человекочитаемое сообщение из ошибок валидатора.
func ValidationError(errs validator.ValidationErrors) Response {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Error(strings.Join(msgs, ", "))
}
