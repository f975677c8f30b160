package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulocell/paulocell-api/internal/application/dto"
	appsync "github.com/paulocell/paulocell-api/internal/application/sync"
)

// SyncHandler trata o sync em lote das mutações offline do cliente.
type SyncHandler struct {
	uc *appsync.UseCase
}

// NewSyncHandler constrói o handler.
func NewSyncHandler(uc *appsync.UseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Apply POST /api/user-data/:userId/sync
func (h *SyncHandler) Apply(c *fiber.Ctx) error {
	userID := c.Params("userId")
	var in dto.SyncRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "corpo inválido"})
	}
	resp, err := h.uc.Apply(c.Context(), userID, in.Changes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
