package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/mvdseller/ventas-api/internal/application/aggregate"
	"github.com/mvdseller/ventas-api/internal/application/refresh"
	"github.com/mvdseller/ventas-api/internal/infrastructure/upstream"
	httpRouter "github.com/mvdseller/ventas-api/internal/interfaces/http"
	"github.com/mvdseller/ventas-api/pkg/config"
	"github.com/mvdseller/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.Upstream.URL == "" {
		// No es fatal: el server arranca y cada request responde el
		// error de configuración hasta que se defina la variable.
		log.Warn().Msg("APPS_SCRIPT_URL no configurada; el dashboard responderá error de configuración")
	}

	client := upstream.NewClient(cfg.Upstream.URL, time.Duration(cfg.Upstream.RequestTimeoutSecs)*time.Second)
	engine := aggregate.NewEngine(aggregate.StockParams{
		WindowDays: cfg.Stock.WindowDays,
		AlertDays:  cfg.Stock.AlertDays,
		WatchDays:  cfg.Stock.WatchDays,
	}, nil)
	refresher := refresh.New(client, engine, log)

	runCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go refresher.Run(runCtx, time.Duration(cfg.Upstream.RefreshSeconds)*time.Second)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Refresher:         refresher,
		Engine:            engine,
		RevalidateSeconds: cfg.Upstream.RevalidateSeconds,
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
	stopRefresh()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
