package models

// ActionRegister значение поля action для заявки на регистрацию
const ActionRegister = "register"

// Registration одноразовая заявка магазина. Собирается целиком и передаётся
// в удалённый сервис, у себя портал её не хранит.
type Registration struct {
	Action      string  `json:"action"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name" validate:"required"`
	Phone       string  `json:"phone" validate:"required"`
	Referrer    string  `json:"referrer"`
	Address     string  `json:"address" validate:"required"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	StoreImage  string  `json:"storeImage" validate:"required"`
	IDCardImage string  `json:"idCardImage" validate:"required"`
}
