package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/clinica-ledger/internal/application/dto"
	"github.com/seu-usuario/clinica-ledger/internal/domain"
)

// erroHTTP traduz os erros de domínio para status HTTP + ErrorResponse.
// Os use cases devolvem erros embrulhados (%w), por isso errors.Is.
func erroHTTP(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrSessoesEsgotadas):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSOES_ESGOTADAS", Message: "pacote sem sessões restantes"})
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ESTOQUE_INSUFICIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrTransicaoInvalida):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSICAO_INVALIDA", Message: err.Error()})
	case errors.Is(err, domain.ErrDocumentoJaEstornado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "JA_ESTORNADO", Message: "documento já estornado"})
	case errors.Is(err, domain.ErrConflitoConcorrencia):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLITO", Message: "conflito de concorrência, tente novamente"})
	case errors.Is(err, domain.ErrNaoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
