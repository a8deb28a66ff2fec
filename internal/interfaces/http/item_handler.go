package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
)

// ItemHandler serves /api/items.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler builds the handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      List items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "code prefix or name fragment"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.ItemResponse]
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextCode godoc
// @Summary      Next free item code
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CodeResponse
// @Router       /api/items/next-code [get]
func (h *ItemHandler) NextCode(c *fiber.Ctx) error {
	code, err := h.uc.NextCode(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: code})
}

// GSTRates godoc
// @Summary      Allowed GST rates
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.GSTRatesResponse
// @Router       /api/items/gst-rates [get]
func (h *ItemHandler) GSTRates(c *fiber.Ctx) error {
	return c.JSON(dto.GSTRatesResponse{Rates: h.uc.GSTRates()})
}

// Prefix godoc
// @Summary      Suggested manual prefix
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CodeResponse
// @Router       /api/items/prefix [get]
func (h *ItemHandler) Prefix(c *fiber.Ctx) error {
	p, err := h.uc.SuggestPrefix(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: p})
}

// Get godoc
// @Summary      Get an item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "item code"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{code} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "item")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create an item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update an item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string           true  "item code"
// @Param        body  body  dto.ItemRequest  true  "item"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{code} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("code"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an item
// @Tags         items
// @Security     Bearer
// @Param        code  path  string  true  "item code"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{code} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
