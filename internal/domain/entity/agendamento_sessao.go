package entity

import "time"

// Status de um agendamento de sessão.
// agendada -> realizada | cancelada | remarcada
// realizada é terminal para edições comuns; só o estorno explícito
// da realização devolve a sessão para agendada.
const (
	SessaoAgendada  = "agendada"
	SessaoRealizada = "realizada"
	SessaoCancelada = "cancelada"
	SessaoRemarcada = "remarcada"
)

// AgendamentoSessao é o movimento do razão de sessões: append-only,
// ordenado por Seq (sequência de criação, nunca relógio de parede).
// Uma sessão só consome a franquia do pacote quando StatusSessao = realizada.
type AgendamentoSessao struct {
	ID                 string
	PacoteTratamentoID string
	PacienteID         string
	DataAgendamento    time.Time
	HorarioInicio      string // HH:MM
	HorarioFim         string // HH:MM, opcional
	LocalAtendimentoID string
	StatusSessao       string
	NumeroSessao       int
	Observacoes        string
	CriadoEm           time.Time
	AtualizadoEm       time.Time
	Seq                int64
}
