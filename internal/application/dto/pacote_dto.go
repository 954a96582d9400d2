package dto

// CriarPacoteRequest body para POST /api/pacotes-tratamento.
type CriarPacoteRequest struct {
	PacienteID               string `json:"paciente_id"`
	TipoTratamentoID         string `json:"tipo_tratamento_id"`
	Descricao                string `json:"descricao"`
	DataInicioTratamento     string `json:"data_inicio_tratamento"` // YYYY-MM-DD
	NumeroSessoesContratadas int    `json:"numero_sessoes_contratadas"`
	Observacoes              string `json:"observacoes,omitempty"`
}

// PacoteResponse read model do pacote com o saldo projetado.
// Forma consumida pelo front end; os campos derivados nunca vêm de coluna,
// sempre do projetor.
type PacoteResponse struct {
	ID                       string  `json:"id"`
	PacienteID               string  `json:"paciente_id"`
	TipoTratamentoID         string  `json:"tipo_tratamento_id"`
	Descricao                string  `json:"descricao"`
	DataInicioTratamento     string  `json:"data_inicio_tratamento"`
	NumeroSessoesContratadas int     `json:"numero_sessoes_contratadas"`
	NumeroSessoesRealizadas  int     `json:"numero_sessoes_realizadas"`
	SessoesRestantes         int     `json:"sessoes_restantes"`
	PercentualConcluido      float64 `json:"percentual_concluido"`
	StatusPacote             string  `json:"status_pacote"`
	Observacoes              string  `json:"observacoes,omitempty"`
	CriadoEm                 string  `json:"data_criacao"`
}
