package repository

import "github.com/seu-usuario/clinica-ledger/internal/domain/entity"

// AgendamentoSessaoRepository define o porto de persistência dos agendamentos
// de sessão (movimentos do razão de sessões). O histórico é append-only:
// só o status transita, nunca o vínculo com o pacote nem o horário —
// remarcação cria um agendamento novo.
type AgendamentoSessaoRepository interface {
	Create(sessao *entity.AgendamentoSessao) error
	GetByID(id string) (*entity.AgendamentoSessao, error)
	List() ([]*entity.AgendamentoSessao, error)
	// ListByPacote devolve o histórico do pacote ordenado por seq.
	ListByPacote(pacoteID string) ([]*entity.AgendamentoSessao, error)
	// CountByStatus conta sessões do pacote nos status informados.
	CountByStatus(pacoteID string, status ...string) (int, error)
	UpdateStatus(id, status string) error
}
