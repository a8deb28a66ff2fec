package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// MasterHandler serves /api/masters/:kind for every code+name master.
type MasterHandler struct {
	uc *usecase.MasterUseCase
}

// NewMasterHandler builds the handler.
func NewMasterHandler(uc *usecase.MasterUseCase) *MasterHandler {
	return &MasterHandler{uc: uc}
}

func masterKind(c *fiber.Ctx) (entity.MasterKind, bool) {
	return entity.ParseMasterKind(c.Params("kind"))
}

// List godoc
// @Summary      List master records
// @Tags         masters
// @Security     Bearer
// @Produce      json
// @Param        kind    path   string  true   "brand|category|product|model|size|unit|salesman|scrap"
// @Param        search  query  string  false  "code prefix or name fragment"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.MasterResponse]
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/masters/{kind} [get]
func (h *MasterHandler) List(c *fiber.Ctx) error {
	kind, ok := masterKind(c)
	if !ok {
		return notFound(c, "master kind")
	}
	out, err := h.uc.List(c.UserContext(), kind, pageQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextCode godoc
// @Summary      Next free code
// @Tags         masters
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "master kind"
// @Success      200   {object}  dto.CodeResponse
// @Router       /api/masters/{kind}/next-code [get]
func (h *MasterHandler) NextCode(c *fiber.Ctx) error {
	kind, ok := masterKind(c)
	if !ok {
		return notFound(c, "master kind")
	}
	code, err := h.uc.NextCode(c.UserContext(), kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: code})
}

// Get godoc
// @Summary      Get a master record
// @Tags         masters
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "master kind"
// @Param        code  path  string  true  "code"
// @Success      200   {object}  dto.MasterResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/masters/{kind}/{code} [get]
func (h *MasterHandler) Get(c *fiber.Ctx) error {
	kind, ok := masterKind(c)
	if !ok {
		return notFound(c, "master kind")
	}
	out, err := h.uc.Get(c.UserContext(), kind, c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, kind.Label())
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a master record
// @Tags         masters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string             true  "master kind"
// @Param        body  body  dto.MasterRequest  true  "code (optional) and name"
// @Success      201   {object}  dto.MasterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/masters/{kind} [post]
func (h *MasterHandler) Create(c *fiber.Ctx) error {
	kind, ok := masterKind(c)
	if !ok {
		return notFound(c, "master kind")
	}
	var in dto.MasterRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Create(c.UserContext(), kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Rename a master record
// @Tags         masters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string             true  "master kind"
// @Param        code  path  string             true  "code"
// @Param        body  body  dto.MasterRequest  true  "new name"
// @Success      200   {object}  dto.MasterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/masters/{kind}/{code} [put]
func (h *MasterHandler) Update(c *fiber.Ctx) error {
	kind, ok := masterKind(c)
	if !ok {
		return notFound(c, "master kind")
	}
	var in dto.MasterRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Update(c.UserContext(), kind, c.Params("code"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a master record
// @Tags         masters
// @Security     Bearer
// @Param        kind  path  string  true  "master kind"
// @Param        code  path  string  true  "code"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "used in related tables"
// @Router       /api/masters/{kind}/{code} [delete]
func (h *MasterHandler) Delete(c *fiber.Ctx) error {
	kind, ok := masterKind(c)
	if !ok {
		return notFound(c, "master kind")
	}
	if err := h.uc.Delete(c.UserContext(), kind, c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
