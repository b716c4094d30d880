package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/orgpulse/orgpulse/pkg/infra/jwt"
	"github.com/sirupsen/logrus"
)

type authMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
	adminOnly  bool
}

func NewAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

// NewAdminAuthMiddleware additionally requires an admin role.
func NewAdminAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
		adminOnly:  true,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization required"})
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization header"})
		}

		claims, err := m.jwtManager.DecodeToken(token)
		if err != nil {
			m.logger.WithError(err).Debug("token rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		if m.adminOnly && claims.Role != user.RoleSuperAdmin && claims.Role != user.RoleCompanyAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
		}

		c.Locals(common.UserIDContextKey, claims.UserID)
		c.Locals(common.CompanyIDContextKey, claims.CompanyID)
		c.Locals(common.RoleContextKey, claims.Role)

		return c.Next()
	}
}
