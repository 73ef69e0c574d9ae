package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	appanalytics "github.com/jhoicas/financebi-api/internal/application/analytics"
	"github.com/jhoicas/financebi-api/internal/application/auth"
	"github.com/jhoicas/financebi-api/internal/application/clients"
	"github.com/jhoicas/financebi-api/internal/application/importer"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
	"github.com/jhoicas/financebi-api/internal/infrastructure/memory"
	"github.com/jhoicas/financebi-api/internal/infrastructure/mockdata"
	infrapdf "github.com/jhoicas/financebi-api/internal/infrastructure/pdf"
	"github.com/jhoicas/financebi-api/internal/infrastructure/postgres"
	"github.com/jhoicas/financebi-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/financebi-api/internal/interfaces/http"
	"github.com/jhoicas/financebi-api/pkg/config"
	"github.com/jhoicas/financebi-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		if cfg.App.Env == "production" {
			log.Fatal().Msg("JWT_SECRET es obligatorio en producción")
		}
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto efímero (los tokens no sobreviven reinicios)")
	}

	// Contexto raíz: se cancela al apagar y aborta importaciones en curso.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// ── Persistencia: PostgreSQL si está configurado, si no memoria ──────────
	var (
		clientRepo   repository.ClientRepository
		sessionStore repository.SessionStore
		storage      = "memory"
	)
	seed := mockdata.NewGenerator(cfg.Seed.RandomSeed).Clients(cfg.Seed.Clients)

	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
		pgClients := postgres.NewClientRepository(pool)
		existing, err := pgClients.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("leer cartera")
		}
		if len(existing) == 0 {
			if err := pgClients.ReplaceAll(ctx, seed); err != nil {
				log.Fatal().Err(err).Msg("sembrar cartera")
			}
			log.Info().Int("clients", len(seed)).Msg("cartera de demostración sembrada")
		}
		clientRepo = pgClients
		sessionStore = postgres.NewSessionStore(pool)
		storage = "postgres"
	} else {
		clientRepo = memory.NewClientRepository(seed)
		sessionStore = memory.NewSessionStore()
	}

	// ── Casos de uso ─────────────────────────────────────────────────────────
	sessionUC, err := auth.NewSessionUseCase(sessionStore,
		auth.Credentials{Username: cfg.Auth.Username, Password: cfg.Auth.Password},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	if err != nil {
		log.Fatal().Err(err).Msg("caso de uso de sesión")
	}
	restored, err := sessionUC.Restore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("restaurar sesión")
	}
	log.Info().Bool("authenticated", restored.Authenticated).Msg("estado de sesión restaurado")

	dashboardUC := appanalytics.NewDashboardUseCase(clientRepo)
	rankingUC := appanalytics.NewRankingUseCase(clientRepo, infrapdf.NewRankingReport(cfg.App.Name))
	clientUC := clients.NewClientUseCase(clientRepo)

	refresher := mockdata.NewSimulatedRefresher(time.Now().UnixNano(), cfg.Import.FlipProbability)
	importUC := importer.NewUseCase(clientRepo, refresher, importer.Config{Delay: cfg.Import.Delay}, log).
		OnFinish(func(s importer.JobStatus) { httpRouter.RecordImport(string(s)) })
	importUC.WithDispatcher(importer.NewLocalDispatcher(ctx, importUC))

	// ── Cola opcional: RabbitMQ reemplaza el despacho local ──────────────────
	queueMode := "local"
	if cfg.Queue.AMQPURL != "" {
		mq, err := queue.NewRabbitMQ(cfg.Queue.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer mq.Close()
		importUC.WithDispatcher(queue.NewProducer(mq.Ch))
		worker := queue.NewWorker(mq.Ch, importUC, log)
		go func() {
			if err := worker.Start(ctx); err != nil {
				log.Error().Err(err).Msg("worker de importación finalizado")
			}
		}()
		queueMode = "rabbitmq"
	}

	// ── HTTP ─────────────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // planillas
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.Metrics())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Finance BI API",
		}))
	}

	app.Get("/health", httpRouter.HealthHandler(storage, queueMode))

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:   sessionUC,
		DashboardUC: dashboardUC,
		RankingUC:   rankingUC,
		ClientUC:    clientUC,
		ImportUC:    importUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
