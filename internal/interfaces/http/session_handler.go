package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
)

// SessionHandler maneja el ciclo de vida de las sesiones de trabajo.
type SessionHandler struct {
	store *usecase.SessionStore
}

// NewSessionHandler construye el handler.
func NewSessionHandler(store *usecase.SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

// Create abre una sesión de trabajo vacía.
// POST /api/sessions
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	s := h.store.Crea()
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{ID: s.ID})
}

// Delete descarta la sesión y todo su estado en memoria.
// DELETE /api/sessions/:id
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	h.store.Elimina(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// sesion resuelve la sesión del path o responde 404. Patrón compartido por los
// handlers que operan sobre una sesión.
func sesion(c *fiber.Ctx, store *usecase.SessionStore) (*usecase.Session, error) {
	s, err := store.Obtiene(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada o vencida"})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return s, nil
}
