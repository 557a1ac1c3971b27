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
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
	"github.com/tu-usuario/cfdi-pro/internal/infrastructure/cfdixml"
	infrapdf "github.com/tu-usuario/cfdi-pro/internal/infrastructure/pdf"
	httpRouter "github.com/tu-usuario/cfdi-pro/internal/interfaces/http"
	"github.com/tu-usuario/cfdi-pro/pkg/config"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
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

	parser := cfdixml.NewParser()
	renderer := infrapdf.NewMarotoRenderer()

	store := usecase.NewSessionStore(time.Duration(cfg.Proc.SessionTTLMinutes) * time.Minute)
	processUC := usecase.NewProcessUseCase(parser, renderer, log.WithComponent("proceso"))
	exportUC := usecase.NewExportUseCase(log.WithComponent("export"))
	diotUC := usecase.NewDiotUseCase(log.WithComponent("diot"))

	// Purga periódica de sesiones inactivas; el estado vive solo en memoria.
	purgeDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := store.Purga(); n > 0 {
					log.Info().Int("sesiones", n).Msg("sesiones vencidas purgadas")
				}
			case <-purgeDone:
				return
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Proc.MaxUploadMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CFDI Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:     store,
		ProcessUC: processUC,
		ExportUC:  exportUC,
		DiotUC:    diotUC,
		Log:       log,
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
	close(purgeDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
