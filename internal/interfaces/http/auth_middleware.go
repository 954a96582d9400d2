package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/clinica-ledger/internal/application/dto"
	"github.com/seu-usuario/clinica-ledger/pkg/jwt"
)

// Locals keys para UserID e Perfil no Fiber.
const (
	LocalUserID = "user_id"
	LocalPerfil = "perfil"
)

// AuthMiddleware valida o Bearer Token JWT e extrai UserID e Perfil para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, perfil, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalPerfil, perfil)
		return c.Next()
	}
}

// RequirePerfil devolve um middleware que autoriza apenas os perfis listados.
// Deve ser usado DEPOIS de AuthMiddleware (precisa de LocalPerfil).
//   - 401 → token sem claim de perfil (tokens antigos).
//   - 403 → perfil presente mas não autorizado para a rota.
func RequirePerfil(perfis ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		perfil := GetPerfil(c)
		if perfil == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_PERFIL", Message: "token sem perfil"})
		}
		for _, p := range perfis {
			if perfil == p {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "perfil sem acesso a esta rota"})
	}
}

// GetUserID devolve o UserID do contexto (após o middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetPerfil devolve o Perfil do contexto (após o middleware de auth).
func GetPerfil(c *fiber.Ctx) string {
	v := c.Locals(LocalPerfil)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
