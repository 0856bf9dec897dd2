package pages

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/referral-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/referral-portal/internal/models"
	"github.com/magabrotheeeer/referral-portal/web"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	renderer, err := NewRenderer(web.Templates)
	require.NoError(t, err)
	h := New(newNoopLogger(), renderer, "https://portal.example/register")
	h.now = func() time.Time { return time.Date(2024, 3, 9, 8, 0, 0, 0, time.Local) }
	return h
}

func TestLogin_AnonymousGetsForm(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).Login(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `data-server-role=""`)
	assert.NotContains(t, rec.Body.String(), `data-server-token`)
	assert.Contains(t, rec.Body.String(), `/static/login.js`)
}

func TestLogin_LoggedInFollowsCookieRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"admin", "/admin/dashboard"},
		{"staff", "/staff"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			req.AddCookie(&http.Cookie{Name: "token", Value: "U1"})
			req.AddCookie(&http.Cookie{Name: "role", Value: tt.role})
			rec := httptest.NewRecorder()

			newHandler(t).Login(rec, req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestLogin_UnknownRoleGetsForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "U1"})
	req.AddCookie(&http.Cookie{Name: "role", Value: "root"})
	rec := httptest.NewRecorder()

	newHandler(t).Login(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-server-role=""`)
}

func TestLogin_RoleWithoutTokenIsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "role", Value: "staff"})
	rec := httptest.NewRecorder()

	newHandler(t).Login(rec, req)
	assert.Contains(t, rec.Body.String(), `data-server-role=""`)
}

func TestRegister_ReferrerFromQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).Register(rec, httptest.NewRequest(http.MethodGet, "/register?ref=U123", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="referrer" value="U123"`)
	assert.Contains(t, rec.Body.String(), `รหัสผู้แนะนำ: U123`)
}

func TestRegister_HasLocationMap(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).Register(rec, httptest.NewRequest(http.MethodGet, "/register", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `id="map"`)
	assert.Contains(t, body, "leaflet.css")
	assert.Contains(t, body, "leaflet.js")
	assert.Contains(t, body, `name="lat"`)
}

func TestRegister_EscapesReferrer(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).Register(rec, httptest.NewRequest(http.MethodGet, "/register?ref=%3Cscript%3E", nil))

	assert.NotContains(t, rec.Body.String(), "<script>x")
	assert.NotContains(t, rec.Body.String(), `value="<script>"`)
}

func TestStaff_ShowsSessionAndQR(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req = req.WithContext(middlewarectx.WithSession(req.Context(), models.Session{
		Token: "U123", Name: "Nok", Role: models.RoleStaff,
	}))
	rec := httptest.NewRecorder()

	newHandler(t).Staff(rec, req)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Nok")
	assert.Contains(t, body, "U123")
	assert.Contains(t, body, `src="/staff/qr.png"`)
	assert.Contains(t, body, "https://portal.example/register?ref=U123")
	assert.Contains(t, body, `data-server-role="staff"`)
	assert.Contains(t, body, `data-server-token="U123"`)
	assert.Contains(t, body, `data-server-name="Nok"`)
}

func TestDashboards(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.AdminDashboard(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard?month=2024-02", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-api="/admin/api/summary"`)
	assert.Contains(t, rec.Body.String(), `value="2024-02"`)
	assert.Contains(t, rec.Body.String(), `/admin/export.xlsx`)
	assert.Contains(t, rec.Body.String(), `src="/admin/chart/bar.svg?month=2024-02"`)
	assert.Contains(t, rec.Body.String(), `src="/admin/chart/pie.svg?month=2024-02"`)

	rec = httptest.NewRecorder()
	h.StaffDashboard(rec, httptest.NewRequest(http.MethodGet, "/staff/dashboard", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-api="/staff/api/summary"`)
	assert.Contains(t, rec.Body.String(), `value="2024-03-09"`)
	assert.Contains(t, rec.Body.String(), `data-chart-base="/staff/chart"`)
	assert.Contains(t, rec.Body.String(), `src="/staff/chart/bar.svg?date=2024-03-09"`)
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ไม่พบหน้าที่คุณกำลังค้นหา")
}

func TestRender_UnknownPage(t *testing.T) {
	renderer, err := NewRenderer(web.Templates)
	require.NoError(t, err)
	assert.Error(t, renderer.Render(httptest.NewRecorder(), http.StatusOK, "nope.html", Data{}))
}
