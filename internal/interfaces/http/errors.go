package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
)

// errorMapping status HTTP y código de error para un error de dominio.
type errorMapping struct {
	target error
	status int
	code   string
}

// Orden importa: los errores más específicos primero.
var errorMappings = []errorMapping{
	{domain.ErrEmptyOrder, fiber.StatusBadRequest, "EMPTY_ORDER"},
	{domain.ErrInsufficientTender, fiber.StatusBadRequest, "INSUFFICIENT_TENDER"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrOwnerImmutable, fiber.StatusForbidden, "OWNER_IMMUTABLE"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrOrderClosed, fiber.StatusConflict, "ORDER_CLOSED"},
	{domain.ErrOrderNotReady, fiber.StatusConflict, "ORDER_NOT_READY"},
	{domain.ErrTableOccupied, fiber.StatusConflict, "TABLE_OCCUPIED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrItemUnavailable, fiber.StatusUnprocessableEntity, "ITEM_UNAVAILABLE"},
	{domain.ErrPaymentGateway, fiber.StatusBadGateway, "PAYMENT_GATEWAY"},
	{domain.ErrGatewayDisabled, fiber.StatusServiceUnavailable, "GATEWAY_DISABLED"},
	{context.DeadlineExceeded, fiber.StatusGatewayTimeout, "TIMEOUT"},
}

// writeError traduce err a dto.ErrorResponse. Lo no mapeado se registra y responde 500
// sin exponer el detalle.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
