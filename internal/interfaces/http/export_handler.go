package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
)

// ExportHandler sirve las descargas de una sesión: Excel por categoría, PDF
// consolidado y exportaciones de columnas elegidas.
type ExportHandler struct {
	uc    *usecase.ExportUseCase
	store *usecase.SessionStore
	log   *logger.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *usecase.ExportUseCase, store *usecase.SessionStore, log *logger.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, store: store, log: log}
}

// Excel descarga el libro de la categoría (detalle + resúmenes).
// GET /api/sessions/:id/export/excel?categoria=emitidos|recibidos
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	s, err := sesion(c, h.store)
	if s == nil {
		return err
	}
	categoria, err := usecase.ValidaCategoria(c.Query("categoria"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	nombre, contenido, err := h.uc.ExcelCategoria(s, categoria)
	if err != nil {
		return h.errorExport(c, err)
	}
	return descarga(c, nombre, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contenido)
}

// PDF descarga el PDF consolidado de la categoría.
// GET /api/sessions/:id/export/pdf?categoria=emitidos|recibidos
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	s, err := sesion(c, h.store)
	if s == nil {
		return err
	}
	categoria, err := usecase.ValidaCategoria(c.Query("categoria"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	nombre, contenido, err := h.uc.PDFCategoria(s, categoria, h.log.Zerolog())
	if err != nil {
		return h.errorExport(c, err)
	}
	return descarga(c, nombre, "application/pdf", contenido)
}

// Columnas descarga un subconjunto de columnas en CSV o XLSX.
// POST /api/sessions/:id/export/columnas
func (h *ExportHandler) Columnas(c *fiber.Ctx) error {
	s, err := sesion(c, h.store)
	if s == nil {
		return err
	}
	var in dto.ExportColumnasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	categoria, err := usecase.ValidaCategoria(in.Categoria)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	in.Categoria = categoria
	nombre, contenido, err := h.uc.ExportColumnas(s, in)
	if err != nil {
		return h.errorExport(c, err)
	}
	tipo := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if len(nombre) > 4 && nombre[len(nombre)-4:] == ".csv" {
		tipo = "text/csv"
	}
	return descarga(c, nombre, tipo, contenido)
}

func (h *ExportHandler) errorExport(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func descarga(c *fiber.Ctx, nombre, tipo string, contenido []byte) error {
	c.Set(fiber.HeaderContentType, tipo)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(contenido)
}
