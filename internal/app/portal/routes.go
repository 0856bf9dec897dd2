// Package portal собирает HTTP-приложение портала: маршруты, шлюз доступа
// и зависимости.
package portal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/referral-portal/docs"
	"github.com/magabrotheeeer/referral-portal/internal/config"
	"github.com/magabrotheeeer/referral-portal/internal/export"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/health"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/pages"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/registration"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/staff"
	"github.com/magabrotheeeer/referral-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/referral-portal/internal/metrics"
	"github.com/magabrotheeeer/referral-portal/internal/registry"
	"github.com/magabrotheeeer/referral-portal/internal/session"
	"github.com/magabrotheeeer/referral-portal/web"
)

// LoginPath страница входа, сюда шлюз отправляет всех без доступа
const LoginPath = "/login"

// Deps зависимости маршрутов
type Deps struct {
	Registry  *registry.Client
	Summaries dashboard.Service
	Renderer  *pages.Renderer
	// Cache nil, если кэш сводок выключен
	Cache health.Pinger
	// Now часы для дашбордов, по умолчанию time.Now
	Now func() time.Time
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, deps Deps) {
	cookies := session.Cookies{TTL: cfg.Session.TTL, Secure: cfg.Session.Secure}
	exporter := export.New(cfg.Export.PDFFontPath)
	pageHandler := pages.New(logger, deps.Renderer, cfg.Referral.RegisterURL)

	adminDashboard := dashboard.New(logger, deps.Summaries, exporter, dashboard.Options{
		FilePrefix: "Admin",
		Now:        deps.Now,
	})
	staffDashboard := dashboard.New(logger, deps.Summaries, exporter, dashboard.Options{
		FilePrefix:   "Staff",
		DefaultToday: true,
		Now:          deps.Now,
	})

	// NotFound до Use: chi оборачивает его в middleware мукса, а 404
	// и так отдаётся изнутри этой цепочки.
	r.NotFound(pageHandler.NotFound)

	// Глобальные middleware. Шлюз стоит до маршрутизации, поэтому
	// неизвестные пути под /admin и /staff тоже уходят на вход.
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Instrument,
		middlewarectx.AuthGate(logger, LoginPath),
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", login.New(logger, deps.Registry, cookies).ServeHTTP)
		r.Get("/login", login.MethodNotAllowed)
		r.Post("/logout", logout.New(logger, cookies).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AllowAnyOrigin)
			reg := registration.New(logger, deps.Registry)
			r.Post("/register", reg.ServeHTTP)
			r.Options("/register", reg.ServeHTTP)
		})
	})

	r.Route(middlewarectx.AdminPrefix, func(r chi.Router) {
		r.Get("/", redirectTo("/admin/dashboard"))
		r.Get("/dashboard", pageHandler.AdminDashboard)
		r.Get("/api/summary", adminDashboard.Summary)
		r.Get("/export.xlsx", adminDashboard.Export(export.FormatXLSX))
		r.Get("/export.csv", adminDashboard.Export(export.FormatCSV))
		r.Get("/export.pdf", adminDashboard.Export(export.FormatPDF))
		r.Get("/chart/bar.svg", adminDashboard.Chart(export.ChartBar))
		r.Get("/chart/pie.svg", adminDashboard.Chart(export.ChartPie))
	})

	r.Route(middlewarectx.StaffPrefix, func(r chi.Router) {
		r.Get("/", pageHandler.Staff)
		r.Get("/qr.png", staff.NewQR(logger, cfg.Referral.RegisterURL).ServeHTTP)
		r.Get("/dashboard", pageHandler.StaffDashboard)
		r.Get("/api/summary", staffDashboard.Summary)
		r.Get("/export.xlsx", staffDashboard.Export(export.FormatXLSX))
		r.Get("/export.csv", staffDashboard.Export(export.FormatCSV))
		r.Get("/export.pdf", staffDashboard.Export(export.FormatPDF))
		r.Get("/chart/bar.svg", staffDashboard.Chart(export.ChartBar))
		r.Get("/chart/pie.svg", staffDashboard.Chart(export.ChartPie))
	})

	r.Get("/", redirectTo(LoginPath))
	r.Get(LoginPath, pageHandler.Login)
	r.Get("/register", pageHandler.Register)
	r.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	r.Get("/healthz", health.New(logger, deps.Cache).ServeHTTP)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	}
}
