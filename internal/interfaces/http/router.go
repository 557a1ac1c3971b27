package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store     *usecase.SessionStore
	ProcessUC *usecase.ProcessUseCase
	ExportUC  *usecase.ExportUseCase
	DiotUC    *usecase.DiotUseCase
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesiones de trabajo
	sessionHandler := NewSessionHandler(deps.Store)
	sessions := api.Group("/sessions")
	sessions.Post("/", sessionHandler.Create)
	sessions.Delete("/:id", sessionHandler.Delete)

	// Procesamiento de lotes y consultas
	procesoHandler := NewProcesoHandler(deps.ProcessUC, deps.Store)
	sessions.Post("/:id/cfdis", procesoHandler.ProcesarLote)
	sessions.Get("/:id/resumen", procesoHandler.Resumen)
	sessions.Put("/:id/deducibles", procesoHandler.Deducibles)

	// Descargas
	exportHandler := NewExportHandler(deps.ExportUC, deps.Store, deps.Log)
	sessions.Get("/:id/export/excel", exportHandler.Excel)
	sessions.Get("/:id/export/pdf", exportHandler.PDF)
	sessions.Post("/:id/export/columnas", exportHandler.Columnas)

	// DIOT
	diotHandler := NewDiotHandler(deps.DiotUC, deps.Store)
	api.Post("/diot", diotHandler.Generar)
	sessions.Get("/:id/diot/sugerencias", diotHandler.Sugerencias)
}
