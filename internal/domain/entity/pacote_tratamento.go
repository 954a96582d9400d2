package entity

import "time"

// Status de um pacote de tratamento.
// ativo -> concluido (todas as sessões realizadas, ou administrativo)
// ativo -> cancelado (administrativo)
// concluido e cancelado são terminais; o estorno de uma realização reabre
// um pacote concluído automaticamente.
const (
	PacoteAtivo     = "ativo"
	PacoteConcluido = "concluido"
	PacoteCancelado = "cancelado"
)

// PacoteTratamento é a concessão de capacidade: o número de sessões
// contratadas é imutável após a criação. O realizado nunca é gravado
// aqui; deriva sempre do histórico de agendamentos (ver ledger.ProjetarPacote).
type PacoteTratamento struct {
	ID                       string
	PacienteID               string
	TipoTratamentoID         string
	Descricao                string
	DataInicioTratamento     time.Time
	NumeroSessoesContratadas int
	StatusPacote             string
	Observacoes              string
	CriadoEm                 time.Time
	AtualizadoEm             time.Time
}
