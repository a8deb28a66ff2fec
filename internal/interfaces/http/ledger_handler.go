package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
)

// LedgerHandler serves /api/ledgers.
type LedgerHandler struct {
	uc *usecase.LedgerUseCase
}

// NewLedgerHandler builds the handler.
func NewLedgerHandler(uc *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// List godoc
// @Summary      List ledgers
// @Tags         ledgers
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "code prefix or name fragment"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.LedgerResponse]
// @Router       /api/ledgers [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextCode godoc
// @Summary      Next free ledger code
// @Tags         ledgers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CodeResponse
// @Router       /api/ledgers/next-code [get]
func (h *LedgerHandler) NextCode(c *fiber.Ctx) error {
	code, err := h.uc.NextCode(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: code})
}

// Get godoc
// @Summary      Get a ledger
// @Tags         ledgers
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "ledger code"
// @Success      200   {object}  dto.LedgerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledgers/{code} [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "ledger")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a ledger
// @Tags         ledgers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LedgerRequest  true  "ledger"
// @Success      201   {object}  dto.LedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledgers [post]
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var in dto.LedgerRequest
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
// @Summary      Update a ledger
// @Tags         ledgers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string           true  "ledger code"
// @Param        body  body  dto.LedgerRequest  true  "ledger"
// @Success      200   {object}  dto.LedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledgers/{code} [put]
func (h *LedgerHandler) Update(c *fiber.Ctx) error {
	var in dto.LedgerRequest
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
// @Summary      Delete a ledger
// @Tags         ledgers
// @Security     Bearer
// @Param        code  path  string  true  "ledger code"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledgers/{code} [delete]
func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
