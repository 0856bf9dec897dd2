// Package period форматирует даты для фильтров сводки и имён выгружаемых файлов.
package period

import "time"

const (
	// DayLayout формат фильтра date
	DayLayout = "2006-01-02"
	// MonthLayout формат фильтра month
	MonthLayout = "2006-01"
)

// Day дата в формате YYYY-MM-DD.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// IsDay проверяет, что строка похожа на фильтр date.
func IsDay(s string) bool {
	_, err := time.Parse(DayLayout, s)
	return err == nil
}

// IsMonth проверяет, что строка похожа на фильтр month.
func IsMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}
