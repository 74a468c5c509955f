package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/i18n"
	"github.com/depotix/depotix-api/pkg/jwt"
)

// Locals keys para UserID, CompanyID y Role en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, CompanyID y Role a c.Locals.
// Toda falla responde 401 UNAUTHORIZED con el mensaje en el idioma negociado.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, i18n.KeyUnauthorized)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, i18n.KeyTokenInvalid)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, i18n.KeyUnauthorized)
		}
		userID, companyID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || companyID == "" {
			return unauthorized(c, i18n.KeyTokenInvalid)
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
// Token sin rol → 401; rol no permitido → 403.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, i18n.KeyTokenInvalid)
		}
		if _, ok := allowed[role]; !ok {
			return writeError(c, fiber.StatusForbidden, dto.CodeForbidden, i18n.Text(GetLang(c), i18n.KeyForbidden), nil)
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, key string) error {
	return writeError(c, fiber.StatusUnauthorized, dto.CodeUnauthorized, i18n.Text(GetLang(c), key), nil)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
