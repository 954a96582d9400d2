package dto

// AgendarSessaoRequest body para POST /api/agendamentos-sessao.
// Agendar não consome a franquia do pacote; só a realização consome.
type AgendarSessaoRequest struct {
	PacienteID         string `json:"paciente_id"`
	PacoteTratamentoID string `json:"pacote_tratamento_id"`
	DataAgendamento    string `json:"data_agendamento"` // YYYY-MM-DD
	HorarioInicio      string `json:"horario_inicio"`   // HH:MM
	HorarioFim         string `json:"horario_fim,omitempty"`
	LocalAtendimentoID string `json:"local_atendimento_id"`
	Observacoes        string `json:"observacoes,omitempty"`
}

// RemarcarSessaoRequest body para POST /api/agendamentos-sessao/:id/remarcar.
type RemarcarSessaoRequest struct {
	DataAgendamento string `json:"data_agendamento"`
	HorarioInicio   string `json:"horario_inicio"`
	HorarioFim      string `json:"horario_fim,omitempty"`
}

// SessaoResponse read model do agendamento de sessão.
type SessaoResponse struct {
	ID                 string `json:"id"`
	PacienteID         string `json:"paciente_id"`
	PacoteTratamentoID string `json:"pacote_tratamento_id"`
	DataAgendamento    string `json:"data_agendamento"`
	HorarioInicio      string `json:"horario_inicio"`
	HorarioFim         string `json:"horario_fim,omitempty"`
	LocalAtendimentoID string `json:"local_atendimento_id"`
	StatusSessao       string `json:"status_sessao"`
	NumeroSessao       int    `json:"numero_sessao"`
	Observacoes        string `json:"observacoes,omitempty"`
}

// SaldoPacoteResponse saldo devolvido após marcar/estornar uma realização.
type SaldoPacoteResponse struct {
	NumeroSessoesRealizadas int     `json:"numero_sessoes_realizadas"`
	SessoesRestantes        int     `json:"sessoes_restantes"`
	PercentualConcluido     float64 `json:"percentual_concluido"`
	StatusPacote            string  `json:"status_pacote"`
}
