package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

// ProductHandler trata os produtos do usuário por local (protegido).
type ProductHandler struct {
	uc   *inventory.UseCase
	errs errorWriter
}

// NewProductHandler constrói o handler.
func NewProductHandler(uc *inventory.UseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, errs: errorWriter{log: log}}
}

// List godoc
// @Summary      Listar produtos de um local
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  true  "Nome do local"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListProducts(c.UserContext(), userID, c.Query("location"))
	if err != nil {
		return h.errs.write(c, err, "Erro ao buscar produtos")
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Indicadores de estoque de um local
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  true  "Nome do local"
// @Success      200  {object}  dto.StatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/stats [get]
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Stats(c.UserContext(), userID, c.Query("location"))
	if err != nil {
		return h.errs.write(c, err, "Erro ao calcular indicadores")
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Relatório de estoque em PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        location  query  string  true  "Nome do local"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/report [get]
func (h *ProductHandler) Report(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	pdf, filename, err := h.uc.StockReport(c.UserContext(), userID, c.Query("location"))
	if err != nil {
		return h.errs.write(c, err, "Erro ao gerar relatório")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// Create godoc
// @Summary      Criar produto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Dados do produto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateProduct(c.UserContext(), userID, in)
	if err != nil {
		return h.errs.write(c, err, "Erro ao criar produto")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar produto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID do produto"
// @Param        body  body  dto.UpdateProductRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProduct(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err, "Erro ao atualizar produto")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir produto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.DeleteProduct(c.UserContext(), userID, c.Params("id")); err != nil {
		return h.errs.write(c, err, "Erro ao excluir produto")
	}
	return c.JSON(dto.MessageResponse{Message: "Produto excluído com sucesso"})
}
