package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/domain"
)

// InUseMessage is the phrase clients look for to show the foreign key message.
const InUseMessage = "used in related tables"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into in and runs the validate tags.
// A non-nil result is the 400 body to send.
func bind(c *fiber.Ctx, in any) *dto.ErrorResponse {
	if err := c.BodyParser(in); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"}
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &dto.ErrorResponse{Code: "VALIDATION", Message: fieldMessage(verrs[0])}
		}
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "len":
		return fe.Field() + " must be " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "email":
		return fe.Field() + " must be a valid email"
	}
	return fe.Field() + " is not valid (" + fe.Tag() + ")"
}

// writeError maps domain errors to status codes and the shared error body.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInUse):
		status, code = fiber.StatusConflict, "IN_USE"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}

	msg := err.Error()
	var detail *domain.DetailError
	if !errors.As(err, &detail) {
		switch code {
		case "NOT_FOUND":
			msg = "resource not found"
		case "DUPLICATE":
			msg = "record already exists"
		case "IN_USE":
			msg = "record is " + InUseMessage
		case "UNAUTHORIZED":
			msg = "invalid credentials"
		case "FORBIDDEN":
			msg = "account inactive"
		}
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		msg = "internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: what + " not found"})
}

// pageQuery reads search/limit/offset with the usual defaults (20, max 100).
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	p.DefaultPage()
	return p
}
