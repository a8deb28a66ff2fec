package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// ReportHandler serves /api/reports/:register.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Register godoc
// @Summary      Report register rows and totals
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        register  path   string  true   "day-book|sales|purchase|sales-return|purchase-return"
// @Param        from      query  string  false  "YYYY-MM-DD"
// @Param        to        query  string  false  "YYYY-MM-DD"
// @Success      200       {object}  dto.RegisterResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/reports/{register} [get]
func (h *ReportHandler) Register(c *fiber.Ctx) error {
	reg, ok := entity.ParseRegister(c.Params("register"))
	if !ok {
		return notFound(c, "register")
	}
	out, err := h.uc.Register(c.UserContext(), reg, c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Report register as PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        register  path   string  true   "register"
// @Param        from      query  string  false  "YYYY-MM-DD"
// @Param        to        query  string  false  "YYYY-MM-DD"
// @Success      200       {file}  binary
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/reports/{register}/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	reg, ok := entity.ParseRegister(c.Params("register"))
	if !ok {
		return notFound(c, "register")
	}
	doc, err := h.uc.RegisterPDF(c.UserContext(), reg, c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, reg))
	return c.Send(doc)
}
