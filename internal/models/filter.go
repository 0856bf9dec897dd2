package models

import "net/url"

// SummaryFilter необязательные фильтры сводки: день (YYYY-MM-DD) и месяц (YYYY-MM).
// Значения передаются в удалённый сервис без изменений.
type SummaryFilter struct {
	Date  string `json:"date,omitempty"`
	Month string `json:"month,omitempty"`
}

// FilterFromQuery достаёт фильтр из query-параметров запроса.
func FilterFromQuery(q url.Values) SummaryFilter {
	return SummaryFilter{
		Date:  q.Get("date"),
		Month: q.Get("month"),
	}
}

// IsEmpty true, если не задан ни один фильтр.
func (f SummaryFilter) IsEmpty() bool {
	return f.Date == "" && f.Month == ""
}

// Values кодирует только непустые фильтры.
func (f SummaryFilter) Values() url.Values {
	v := url.Values{}
	if f.Date != "" {
		v.Set("date", f.Date)
	}
	if f.Month != "" {
		v.Set("month", f.Month)
	}
	return v
}

// Query строка запроса с ведущим "?" или пустая строка без фильтров.
func (f SummaryFilter) Query() string {
	if f.IsEmpty() {
		return ""
	}
	return "?" + f.Values().Encode()
}
