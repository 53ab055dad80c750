package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Intendencia-api/internal/application/auth"
	"github.com/jhoicas/Intendencia-api/internal/application/dashboard"
	"github.com/jhoicas/Intendencia-api/internal/application/ledger"
	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/application/ports"
	"github.com/jhoicas/Intendencia-api/internal/application/usecase"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Intendencia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Intendencia-api/internal/interfaces/http"
	"github.com/jhoicas/Intendencia-api/pkg/config"
	"github.com/jhoicas/Intendencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		AppName: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Bool("opening_windowed", cfg.Ledger.OpeningWindowed).
		Bool("enforce_availability", cfg.Ledger.EnforceAvailability).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, *cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("conexión al store")
	}
	defer st.Close()

	if cfg.DB.Migrate || st.Driver == config.DriverSQLite {
		if err := st.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pol := policy.New(policy.Options{CommanderRecordsUsage: cfg.Policy.CommanderRecordsUsage})

	var metricsRec ports.MetricsRecorder = ports.NopMetrics{}
	var promRec *metrics.Recorder
	if cfg.Metrics.Enabled {
		promRec = metrics.NewRecorder()
		metricsRec = promRec
	}

	aggregator := ledger.NewAggregator(st.Ledger, pol, metricsRec, log.Component("ledger"), ledger.Options{
		OpeningWindowed: cfg.Ledger.OpeningWindowed,
	})
	recorder := movement.NewRecorder(st.TxRunner, st.Bases, st.Equipment, pol, metricsRec, log.Component("movement"), movement.Options{
		EnforceAvailability: cfg.Ledger.EnforceAvailability,
		OpeningWindowed:     cfg.Ledger.OpeningWindowed,
	})
	authUC := auth.NewAuthUseCase(st.Users, st.Bases, pol, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	dashboardUC := dashboard.NewDashboardUseCase(aggregator, st.Bases, st.Equipment, pol, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Intendencia API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := st.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": st.Driver})
	})
	if promRec != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promRec.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ReferenceUC: usecase.NewReferenceUseCase(st.Bases, st.Equipment, pol),
		Recorder:    recorder,
		Query:       movement.NewQuery(st.Movements, pol),
		DashboardUC: dashboardUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
