package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/clinica-ledger/internal/application/dto"
	"github.com/seu-usuario/clinica-ledger/internal/application/sessoes"
	"github.com/seu-usuario/clinica-ledger/internal/domain/ledger"
)

// PacoteHandler atende as rotas de pacotes de tratamento (protegido).
type PacoteHandler struct {
	uc *sessoes.UseCase
}

// NewPacoteHandler constrói o handler.
func NewPacoteHandler(uc *sessoes.UseCase) *PacoteHandler {
	return &PacoteHandler{uc: uc}
}

// Create godoc
// @Summary      Criar pacote de tratamento
// @Tags         pacotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarPacoteRequest  true  "Dados do pacote"
// @Success      201   {object}  dto.PacoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pacotes-tratamento [post]
func (h *PacoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarPacoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	dataInicio, err := time.Parse("2006-01-02", in.DataInicioTratamento)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_inicio_tratamento deve ser YYYY-MM-DD"})
	}
	pacote, err := h.uc.CriarPacote(c.Context(), sessoes.CriarPacoteInput{
		PacienteID:               in.PacienteID,
		TipoTratamentoID:         in.TipoTratamentoID,
		Descricao:                in.Descricao,
		DataInicioTratamento:     dataInicio,
		NumeroSessoesContratadas: in.NumeroSessoesContratadas,
		Observacoes:              in.Observacoes,
	})
	if err != nil {
		return erroHTTP(c, err)
	}
	// Pacote recém-criado: saldo cheio, nada realizado ainda.
	out := sessoes.PacoteComSaldo{
		Pacote: pacote,
		Saldo:  ledger.SaldoDePacote(pacote.NumeroSessoesContratadas, 0),
	}
	return c.Status(fiber.StatusCreated).JSON(toPacoteResponse(out))
}

// List godoc
// @Summary      Listar pacotes de tratamento com saldo projetado
// @Tags         pacotes
// @Security     Bearer
// @Produce      json
// @Param        paciente_id  query  string  false  "Filtrar por paciente"
// @Success      200  {array}  dto.PacoteResponse
// @Router       /api/pacotes-tratamento [get]
func (h *PacoteHandler) List(c *fiber.Ctx) error {
	var list []sessoes.PacoteComSaldo
	var err error
	if pacienteID := c.Query("paciente_id"); pacienteID != "" {
		list, err = h.uc.ListarPacotesPorPaciente(c.Context(), pacienteID)
	} else {
		list, err = h.uc.ListarPacotes(c.Context())
	}
	if err != nil {
		return erroHTTP(c, err)
	}
	out := make([]dto.PacoteResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPacoteResponse(p))
	}
	return c.JSON(out)
}

// ListPendentes godoc
// @Summary      Listar pacotes ativos com sessões restantes (mais antigo primeiro)
// @Tags         pacotes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PacoteResponse
// @Router       /api/pacotes-tratamento/pendentes [get]
func (h *PacoteHandler) ListPendentes(c *fiber.Ctx) error {
	list, err := h.uc.ListarPacotesPendentes(c.Context())
	if err != nil {
		return erroHTTP(c, err)
	}
	out := make([]dto.PacoteResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPacoteResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter pacote por ID com saldo projetado
// @Tags         pacotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pacote"
// @Success      200  {object}  dto.PacoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pacotes-tratamento/{id} [get]
func (h *PacoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.ObterPacote(c.Context(), c.Params("id"))
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(toPacoteResponse(*out))
}

// Concluir godoc
// @Summary      Concluir pacote (administrativo)
// @Tags         pacotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pacote"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pacotes-tratamento/{id}/concluir [post]
func (h *PacoteHandler) Concluir(c *fiber.Ctx) error {
	if err := h.uc.ConcluirPacote(c.Context(), c.Params("id")); err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(fiber.Map{"message": "pacote concluído"})
}

// Cancelar godoc
// @Summary      Cancelar pacote (administrativo)
// @Tags         pacotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pacote"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pacotes-tratamento/{id}/cancelar [post]
func (h *PacoteHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.uc.CancelarPacote(c.Context(), c.Params("id")); err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(fiber.Map{"message": "pacote cancelado"})
}

func toPacoteResponse(p sessoes.PacoteComSaldo) dto.PacoteResponse {
	return dto.PacoteResponse{
		ID:                       p.Pacote.ID,
		PacienteID:               p.Pacote.PacienteID,
		TipoTratamentoID:         p.Pacote.TipoTratamentoID,
		Descricao:                p.Pacote.Descricao,
		DataInicioTratamento:     p.Pacote.DataInicioTratamento.Format("2006-01-02"),
		NumeroSessoesContratadas: p.Pacote.NumeroSessoesContratadas,
		NumeroSessoesRealizadas:  p.Saldo.SessoesRealizadas,
		SessoesRestantes:         p.Saldo.SessoesRestantes,
		PercentualConcluido:      p.Saldo.PercentualConcluido,
		StatusPacote:             p.Pacote.StatusPacote,
		Observacoes:              p.Pacote.Observacoes,
		CriadoEm:                 p.Pacote.CriadoEm.Format(time.RFC3339),
	}
}
