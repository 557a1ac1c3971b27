package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
)

// DiotHandler maneja la generación de la DIOT y las sugerencias de
// proveedores derivadas de una sesión.
type DiotHandler struct {
	uc    *usecase.DiotUseCase
	store *usecase.SessionStore
}

// NewDiotHandler construye el handler.
func NewDiotHandler(uc *usecase.DiotUseCase, store *usecase.SessionStore) *DiotHandler {
	return &DiotHandler{uc: uc, store: store}
}

// Generar valida la declaración completa y descarga el archivo de texto.
// Una declaración incompleta responde 422 sin emitir texto parcial.
// POST /api/diot
func (h *DiotHandler) Generar(c *fiber.Ctx) error {
	var in dto.DiotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	nombre, texto, err := h.uc.Genera(in)
	if err != nil {
		if errors.Is(err, domain.ErrIncompleteDiot) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "DIOT_INCOMPLETA", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return descarga(c, nombre, "text/plain; charset=utf-8", []byte(texto))
}

// Sugerencias devuelve el borrador de proveedores a partir de los CFDIs
// recibidos de la sesión.
// GET /api/sessions/:id/diot/sugerencias
func (h *DiotHandler) Sugerencias(c *fiber.Ctx) error {
	s, err := sesion(c, h.store)
	if s == nil {
		return err
	}
	return c.JSON(h.uc.Sugerencias(s))
}
