package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/paulocell/paulocell-api/internal/application/dto"
	"github.com/paulocell/paulocell-api/internal/application/userdata"
	"github.com/paulocell/paulocell-api/internal/domain"
)

// UserDataHandler trata as requisições HTTP da fachada chave/valor por usuário.
// A identidade vem do path (:userId); não há autenticação nesta camada.
type UserDataHandler struct {
	uc *userdata.UseCase
}

// NewUserDataHandler constrói o handler.
func NewUserDataHandler(uc *userdata.UseCase) *UserDataHandler {
	return &UserDataHandler{uc: uc}
}

// Get GET /api/user-data/:userId/:store/:key
func (h *UserDataHandler) Get(c *fiber.Ctx) error {
	userID, store, key := c.Params("userId"), c.Params("store"), c.Params("key")
	resp, err := h.uc.Get(c.Context(), userID, store, key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Upsert PUT/POST /api/user-data/:userId/:store/:key
func (h *UserDataHandler) Upsert(c *fiber.Ctx) error {
	userID, store, key := c.Params("userId"), c.Params("store"), c.Params("key")
	var in dto.UpsertUserDataRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "corpo inválido"})
	}
	resp, err := h.uc.Upsert(c.Context(), userID, store, key, in.Data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Delete DELETE /api/user-data/:userId/:store/:key
func (h *UserDataHandler) Delete(c *fiber.Ctx) error {
	userID, store, key := c.Params("userId"), c.Params("store"), c.Params("key")
	if err := h.uc.Delete(c.Context(), userID, store, key); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteUserDataResponse{Success: true})
}

// List GET /api/user-data/:userId/:store
func (h *UserDataHandler) List(c *fiber.Ctx) error {
	userID, store := c.Params("userId"), c.Params("store")
	resp, err := h.uc.List(c.Context(), userID, store)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// writeError mapeia os erros de domínio para o contrato {success:false, message}.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "registro não encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "parâmetros inválidos"})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
}
