package repository

import "github.com/seu-usuario/clinica-ledger/internal/domain/entity"

// PacoteTratamentoRepository define o porto de persistência dos pacotes
// de tratamento (concessões do razão de sessões).
type PacoteTratamentoRepository interface {
	Create(pacote *entity.PacoteTratamento) error
	GetByID(id string) (*entity.PacoteTratamento, error)
	// GetForUpdate bloqueia a linha do pacote (SELECT FOR UPDATE) para
	// serializar guard e append na mesma transação.
	GetForUpdate(id string) (*entity.PacoteTratamento, error)
	List() ([]*entity.PacoteTratamento, error)
	ListByPaciente(pacienteID string) ([]*entity.PacoteTratamento, error)
	// ListAtivos lista pacotes ativos em ordem de criação (mais antigo primeiro).
	ListAtivos() ([]*entity.PacoteTratamento, error)
	UpdateStatus(id, status string) error
}
