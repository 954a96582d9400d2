package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/clinica-ledger/internal/application/dto"
	"github.com/seu-usuario/clinica-ledger/internal/application/sessoes"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
)

// SessaoHandler atende as rotas de agendamentos de sessão (protegido).
type SessaoHandler struct {
	uc *sessoes.UseCase
}

// NewSessaoHandler constrói o handler.
func NewSessaoHandler(uc *sessoes.UseCase) *SessaoHandler {
	return &SessaoHandler{uc: uc}
}

// Create godoc
// @Summary      Agendar sessão
// @Description  Agendar não consome a franquia do pacote; só a realização consome.
// @Tags         sessoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AgendarSessaoRequest  true  "Dados do agendamento"
// @Success      201   {object}  dto.SessaoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/agendamentos-sessao [post]
func (h *SessaoHandler) Create(c *fiber.Ctx) error {
	var in dto.AgendarSessaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	data, err := time.Parse("2006-01-02", in.DataAgendamento)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_agendamento deve ser YYYY-MM-DD"})
	}
	sessao, err := h.uc.AgendarSessao(c.Context(), sessoes.AgendarSessaoInput{
		PacienteID:         in.PacienteID,
		PacoteTratamentoID: in.PacoteTratamentoID,
		DataAgendamento:    data,
		HorarioInicio:      in.HorarioInicio,
		HorarioFim:         in.HorarioFim,
		LocalAtendimentoID: in.LocalAtendimentoID,
		Observacoes:        in.Observacoes,
	})
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSessaoResponse(sessao))
}

// List godoc
// @Summary      Listar agendamentos em ordem de criação
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SessaoResponse
// @Router       /api/agendamentos-sessao [get]
func (h *SessaoHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListarSessoes(c.Context())
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(toSessaoResponses(list))
}

// ListByPacote godoc
// @Summary      Histórico de sessões de um pacote (ordem de criação)
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pacote"
// @Success      200  {array}  dto.SessaoResponse
// @Router       /api/agendamentos-sessao/pacote/{id} [get]
func (h *SessaoHandler) ListByPacote(c *fiber.Ctx) error {
	list, err := h.uc.ListarSessoesPorPacote(c.Context(), c.Params("id"))
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(toSessaoResponses(list))
}

// MarcarRealizada godoc
// @Summary      Marcar sessão como realizada
// @Description  Consome uma sessão da franquia sob lock do pacote e devolve o
//               saldo projetado após o débito. Pacote é concluído automaticamente
//               quando a última sessão é realizada.
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do agendamento"
// @Success      200  {object}  dto.SaldoPacoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendamentos-sessao/{id}/marcar-realizada [post]
func (h *SessaoHandler) MarcarRealizada(c *fiber.Ctx) error {
	saldo, statusPacote, err := h.uc.MarcarRealizada(c.Context(), c.Params("id"))
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(dto.SaldoPacoteResponse{
		NumeroSessoesRealizadas: saldo.SessoesRealizadas,
		SessoesRestantes:        saldo.SessoesRestantes,
		PercentualConcluido:     saldo.PercentualConcluido,
		StatusPacote:            statusPacote,
	})
}

// Cancelar godoc
// @Summary      Cancelar agendamento
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do agendamento"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendamentos-sessao/{id}/cancelar [post]
func (h *SessaoHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.uc.Cancelar(c.Context(), c.Params("id")); err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(fiber.Map{"message": "agendamento cancelado"})
}

// Remarcar godoc
// @Summary      Remarcar agendamento
// @Description  O agendamento original vira "remarcada" e um novo é criado com a
//               nova data, preservando o número da sessão.
// @Tags         sessoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do agendamento"
// @Param        body  body  dto.RemarcarSessaoRequest  true  "Nova data e horários"
// @Success      201   {object}  dto.SessaoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/agendamentos-sessao/{id}/remarcar [post]
func (h *SessaoHandler) Remarcar(c *fiber.Ctx) error {
	var in dto.RemarcarSessaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	data, err := time.Parse("2006-01-02", in.DataAgendamento)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_agendamento deve ser YYYY-MM-DD"})
	}
	nova, err := h.uc.Remarcar(c.Context(), c.Params("id"), data, in.HorarioInicio, in.HorarioFim)
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSessaoResponse(nova))
}

// EstornarRealizacao godoc
// @Summary      Estornar a realização de uma sessão
// @Description  Devolve a sessão para "agendada" e o crédito para a franquia.
//               Um pacote concluído automaticamente é reaberto.
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do agendamento"
// @Success      200  {object}  dto.SaldoPacoteResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendamentos-sessao/{id}/estornar-realizacao [post]
func (h *SessaoHandler) EstornarRealizacao(c *fiber.Ctx) error {
	saldo, statusPacote, err := h.uc.EstornarRealizacao(c.Context(), c.Params("id"))
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(dto.SaldoPacoteResponse{
		NumeroSessoesRealizadas: saldo.SessoesRealizadas,
		SessoesRestantes:        saldo.SessoesRestantes,
		PercentualConcluido:     saldo.PercentualConcluido,
		StatusPacote:            statusPacote,
	})
}

func toSessaoResponse(s *entity.AgendamentoSessao) dto.SessaoResponse {
	return dto.SessaoResponse{
		ID:                 s.ID,
		PacienteID:         s.PacienteID,
		PacoteTratamentoID: s.PacoteTratamentoID,
		DataAgendamento:    s.DataAgendamento.Format("2006-01-02"),
		HorarioInicio:      s.HorarioInicio,
		HorarioFim:         s.HorarioFim,
		LocalAtendimentoID: s.LocalAtendimentoID,
		StatusSessao:       s.StatusSessao,
		NumeroSessao:       s.NumeroSessao,
		Observacoes:        s.Observacoes,
	}
}

func toSessaoResponses(list []*entity.AgendamentoSessao) []dto.SessaoResponse {
	out := make([]dto.SessaoResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSessaoResponse(s))
	}
	return out
}
