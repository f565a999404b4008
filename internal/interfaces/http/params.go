package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
)

// RequireUUIDParams responde 404 si alguno de los parámetros de ruta no es un uuid.
func RequireUUIDParams(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			if _, err := uuid.Parse(c.Params(name)); err != nil {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
			}
		}
		return c.Next()
	}
}
