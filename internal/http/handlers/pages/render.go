package pages

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// Имена страниц, совпадают с файлами в templates/
const (
	PageLogin          = "login.html"
	PageRegister       = "register.html"
	PageAdminDashboard = "admin_dashboard.html"
	PageStaff          = "staff.html"
	PageStaffDashboard = "staff_dashboard.html"
	PageNotFound       = "not_found.html"
)

var allPages = []string{
	PageLogin,
	PageRegister,
	PageAdminDashboard,
	PageStaff,
	PageStaffDashboard,
	PageNotFound,
}

// Renderer набор разобранных шаблонов, по одному на страницу: у каждой
// свои блоки title, content и scripts поверх общего layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer разбирает шаблоны из fsys. Ожидается каталог templates/.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	const op = "pages.NewRenderer"

	r := &Renderer{pages: make(map[string]*template.Template, len(allPages))}
	for _, page := range allPages {
		t, err := template.New(page).ParseFS(fsys,
			"templates/layout.html",
			"templates/summary.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render исполняет шаблон в буфер, чтобы ошибка шаблона не оставила
// наполовину записанный ответ.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("pages.Render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("pages.Render: %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
