package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/financebi-api/internal/application/analytics"
	"github.com/jhoicas/financebi-api/internal/application/auth"
	"github.com/jhoicas/financebi-api/internal/application/clients"
	"github.com/jhoicas/financebi-api/internal/application/importer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC   *auth.SessionUseCase
	DashboardUC *analytics.DashboardUseCase
	RankingUC   *analytics.RankingUseCase
	ClientUC    *clients.ClientUseCase
	ImportUC    *importer.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.SessionUC)
	sessionHandler := NewSessionHandler(deps.SessionUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/session", sessionHandler.Status)

	// Rutas protegidas: Bearer Token + flag de sesión
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireSession(deps.SessionUC))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Put("/session/view", sessionHandler.Navigate)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	clientHandler := NewClientHandler(deps.ClientUC)
	protected.Get("/clients", clientHandler.List)
	protected.Get("/clients/:id", clientHandler.GetByID)

	rankingHandler := NewRankingHandler(deps.RankingUC)
	protected.Get("/ranking", rankingHandler.Get)
	protected.Get("/ranking/report", rankingHandler.Report)

	importHandler := NewImportHandler(deps.ImportUC)
	protected.Post("/import", importHandler.Upload)
	protected.Get("/import/:id", importHandler.GetJob)
}
