package models

// StaffCount строка сводки: сколько регистраций привёл сотрудник.
type StaffCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
