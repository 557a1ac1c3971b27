package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
)

// ProcesoHandler maneja la carga y procesamiento de lotes de CFDIs y las
// consultas sobre el resultado.
type ProcesoHandler struct {
	uc    *usecase.ProcessUseCase
	store *usecase.SessionStore
}

// NewProcesoHandler construye el handler.
func NewProcesoHandler(uc *usecase.ProcessUseCase, store *usecase.SessionStore) *ProcesoHandler {
	return &ProcesoHandler{uc: uc, store: store}
}

// ProcesarLote recibe los XML de una categoría (multipart, campo "archivos"),
// los procesa en orden y reemplaza el lote anterior de esa categoría.
// POST /api/sessions/:id/cfdis?categoria=emitidos|recibidos
func (h *ProcesoHandler) ProcesarLote(c *fiber.Ctx) error {
	s, err := sesion(c, h.store)
	if s == nil {
		return err
	}

	categoria, err := usecase.ValidaCategoria(c.Query("categoria"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera multipart/form-data"})
	}
	ficheros := form.File["archivos"]
	if len(ficheros) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere al menos un archivo en el campo 'archivos'"})
	}

	archivos := make([]usecase.Archivo, 0, len(ficheros))
	for _, fh := range ficheros {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer " + fh.Filename})
		}
		contenido, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer " + fh.Filename})
		}
		archivos = append(archivos, usecase.Archivo{Nombre: fh.Filename, Contenido: contenido})
	}

	res := h.uc.ProcesaLote(archivos, categoria, nil)
	s.GuardaLote(res)

	return c.JSON(usecase.RespuestaLote(res))
}

// Resumen devuelve el consolidado mensual, por entidad y totales de ambas
// categorías de la sesión.
// GET /api/sessions/:id/resumen
func (h *ProcesoHandler) Resumen(c *fiber.Ctx) error {
	s, err := sesion(c, h.store)
	if s == nil {
		return err
	}
	return c.JSON(h.uc.Resumen(s))
}

// Deducibles marca como deducibles las filas cuya clave de producto/servicio
// está en el conjunto enviado. Reemplaza la selección anterior.
// PUT /api/sessions/:id/deducibles
func (h *ProcesoHandler) Deducibles(c *fiber.Ctx) error {
	s, err := sesion(c, h.store)
	if s == nil {
		return err
	}
	var in dto.DeduciblesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(h.uc.AplicaDeducibles(s, in.Claves))
}
