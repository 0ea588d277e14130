package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/usecase"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

// LocationHandler trata o catálogo de locais de estoque do usuário (protegido).
type LocationHandler struct {
	uc   *usecase.LocationUseCase
	errs errorWriter
}

// NewLocationHandler constrói o handler.
func NewLocationHandler(uc *usecase.LocationUseCase, log *logger.Logger) *LocationHandler {
	return &LocationHandler{uc: uc, errs: errorWriter{log: log}}
}

// List godoc
// @Summary      Listar locais de estoque
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return h.errs.write(c, err, "Erro interno ao buscar locais de estoque")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar local de estoque
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "name, description, icon"
// @Success      201   {array}   dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), userID, in)
	if err != nil {
		return h.errs.write(c, err, "Erro ao criar novo local")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetActive godoc
// @Summary      Trocar local ativo
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetActiveLocationRequest  true  "activeLocation"
// @Success      200   {object}  dto.ActiveLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations [patch]
func (h *LocationHandler) SetActive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.SetActiveLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	active, err := h.uc.SetActive(c.UserContext(), userID, in.ActiveLocation)
	if err != nil {
		return h.errs.write(c, err, "Erro ao atualizar local ativo")
	}
	return c.JSON(dto.ActiveLocationResponse{
		Message:        "Local ativo atualizado com sucesso",
		ActiveLocation: active,
	})
}

// Remove godoc
// @Summary      Remover local de estoque
// @Description  Remove o local e seus produtos. Nome inexistente não é erro.
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveLocationRequest  true  "name"
// @Success      200   {object}  dto.LocationListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations [delete]
func (h *LocationHandler) Remove(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RemoveLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Remove(c.UserContext(), userID, in.Name)
	if err != nil {
		return h.errs.write(c, err, "Erro ao deletar local de estoque")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renomear/editar local de estoque
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID do local"
// @Param        body  body  dto.UpdateLocationRequest  true  "name, description, icon"
// @Success      200   {object}  dto.LocationListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err, "Erro ao atualizar local de estoque")
	}
	return c.JSON(out)
}
