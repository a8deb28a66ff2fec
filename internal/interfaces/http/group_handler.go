package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
)

// GroupHandler serves /api/groups.
type GroupHandler struct {
	uc *usecase.GroupUseCase
}

// NewGroupHandler builds the handler.
func NewGroupHandler(uc *usecase.GroupUseCase) *GroupHandler {
	return &GroupHandler{uc: uc}
}

// Tree godoc
// @Summary      Nested group tree
// @Tags         groups
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GroupNode
// @Router       /api/groups/tree [get]
func (h *GroupHandler) Tree(c *fiber.Ctx) error {
	out, err := h.uc.Tree(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a group (admin)
// @Tags         groups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GroupRequest  true  "group"
// @Success      201   {object}  dto.GroupNode
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/groups [post]
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var in dto.GroupRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Delete a group (admin)
// @Tags         groups
// @Security     Bearer
// @Param        code  path  string  true  "group code"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/groups/{code} [delete]
func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
