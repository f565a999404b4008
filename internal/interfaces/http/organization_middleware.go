package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// organizationChecker contrato mínimo para verificar el estado de la organización.
// Lo implementa *usecase.OrganizationUseCase.
type organizationChecker interface {
	IsActive(ctx context.Context, orgID string) (bool, error)
}

// RequireActiveOrganization verifica que la organización del token exista y no esté
// suspendida. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalOrgID).
//
// Comportamiento:
//   - 403 NO_ORGANIZATION → el usuario no pertenece a ninguna organización.
//   - 403 ORGANIZATION_SUSPENDED → organización suspendida o inexistente.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireActiveOrganization(checker organizationChecker, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID := GetOrgID(c)
		if orgID == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "NO_ORGANIZATION",
				Message: "el usuario no pertenece a ninguna organización",
			})
		}

		active, err := checker.IsActive(c.Context(), orgID)
		if err != nil {
			log.Error().Err(err).Str("org_id", orgID).Msg("verificar organización")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ORGANIZATION_CHECK_FAILED",
				Message: "no se pudo verificar la organización, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ORGANIZATION_SUSPENDED",
				Message: "la organización está suspendida",
			})
		}

		return c.Next()
	}
}

// memberChecker relee el perfil del usuario. Lo implementa *usecase.TeamUseCase.
type memberChecker interface {
	CurrentMember(ctx context.Context, userID string) (*dto.ProfileResponse, error)
}

// RequireMembership confirma contra la base que el usuario del token sigue activo en la
// organización del token y reemplaza LocalRole por el rol guardado. Va antes de RequireRole.
//   - 403 MEMBERSHIP_REVOKED → removido, inactivo o movido a otra organización.
//   - 503 MEMBERSHIP_CHECK_FAILED → fallo al consultar la DB.
func RequireMembership(checker memberChecker, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		p, err := checker.CurrentMember(c.Context(), userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("verificar membresía")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MEMBERSHIP_CHECK_FAILED",
				Message: "no se pudo verificar el usuario, intente más tarde",
			})
		}
		if p == nil || p.Status != entity.ProfileStatusActive || p.OrgID == "" || p.OrgID != GetOrgID(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MEMBERSHIP_REVOKED",
				Message: "el usuario ya no pertenece a esta organización",
			})
		}
		c.Locals(LocalRole, p.Role)
		return c.Next()
	}
}
