package registry

import "errors"

var (
	// ErrNotJSON тело ответа удалённого сервиса не разбирается как JSON
	ErrNotJSON = errors.New("registry response is not JSON")
	// ErrUnavailable сервис недоступен: сетевая ошибка или истёк таймаут
	ErrUnavailable = errors.New("registry unavailable")
)
