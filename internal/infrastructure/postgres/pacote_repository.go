package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

var _ repository.PacoteTratamentoRepository = (*PacoteTratamentoRepo)(nil)

const pacoteColunas = `id, paciente_id, tipo_tratamento_id, descricao, data_inicio_tratamento,
	numero_sessoes_contratadas, status_pacote, observacoes, criado_em, atualizado_em`

// PacoteTratamentoRepo implementação sobre PostgreSQL (usável com pool ou tx).
type PacoteTratamentoRepo struct {
	q Querier
}

// NewPacoteTratamentoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPacoteTratamentoRepository(q Querier) *PacoteTratamentoRepo {
	return &PacoteTratamentoRepo{q: q}
}

// Create persiste um pacote de tratamento.
func (r *PacoteTratamentoRepo) Create(pacote *entity.PacoteTratamento) error {
	if pacote.ID == "" {
		pacote.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pacotes_tratamento (id, paciente_id, tipo_tratamento_id, descricao, data_inicio_tratamento,
			numero_sessoes_contratadas, status_pacote, observacoes, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		pacote.ID, pacote.PacienteID, pacote.TipoTratamentoID, pacote.Descricao,
		pacote.DataInicioTratamento, pacote.NumeroSessoesContratadas,
		pacote.StatusPacote, pacote.Observacoes, pacote.CriadoEm, pacote.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("create pacote: %w", err)
	}
	return nil
}

// GetByID obtém um pacote por ID.
func (r *PacoteTratamentoRepo) GetByID(id string) (*entity.PacoteTratamento, error) {
	query := `SELECT ` + pacoteColunas + ` FROM pacotes_tratamento WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtém um pacote bloqueando a linha (SELECT FOR UPDATE).
func (r *PacoteTratamentoRepo) GetForUpdate(id string) (*entity.PacoteTratamento, error) {
	query := `SELECT ` + pacoteColunas + ` FROM pacotes_tratamento WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List lista todos os pacotes, mais recentes primeiro.
func (r *PacoteTratamentoRepo) List() ([]*entity.PacoteTratamento, error) {
	query := `SELECT ` + pacoteColunas + ` FROM pacotes_tratamento ORDER BY criado_em DESC`
	return r.list(query)
}

// ListByPaciente lista os pacotes de um paciente, mais recentes primeiro.
func (r *PacoteTratamentoRepo) ListByPaciente(pacienteID string) ([]*entity.PacoteTratamento, error) {
	query := `SELECT ` + pacoteColunas + ` FROM pacotes_tratamento WHERE paciente_id = $1 ORDER BY criado_em DESC`
	return r.list(query, pacienteID)
}

// ListAtivos lista pacotes ativos em ordem de criação (mais antigo primeiro).
func (r *PacoteTratamentoRepo) ListAtivos() ([]*entity.PacoteTratamento, error) {
	query := `SELECT ` + pacoteColunas + ` FROM pacotes_tratamento WHERE status_pacote = $1 ORDER BY criado_em ASC`
	return r.list(query, entity.PacoteAtivo)
}

// UpdateStatus atualiza o status do pacote.
func (r *PacoteTratamentoRepo) UpdateStatus(id, status string) error {
	query := `UPDATE pacotes_tratamento SET status_pacote = $2, atualizado_em = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update status pacote: %w", err)
	}
	return nil
}

func (r *PacoteTratamentoRepo) scanOne(row pgx.Row) (*entity.PacoteTratamento, error) {
	var p entity.PacoteTratamento
	err := row.Scan(
		&p.ID, &p.PacienteID, &p.TipoTratamentoID, &p.Descricao, &p.DataInicioTratamento,
		&p.NumeroSessoesContratadas, &p.StatusPacote, &p.Observacoes, &p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pacote: %w", err)
	}
	return &p, nil
}

func (r *PacoteTratamentoRepo) list(query string, args ...any) ([]*entity.PacoteTratamento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pacotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.PacoteTratamento
	for rows.Next() {
		var p entity.PacoteTratamento
		if err := rows.Scan(
			&p.ID, &p.PacienteID, &p.TipoTratamentoID, &p.Descricao, &p.DataInicioTratamento,
			&p.NumeroSessoesContratadas, &p.StatusPacote, &p.Observacoes, &p.CriadoEm, &p.AtualizadoEm,
		); err != nil {
			return nil, fmt.Errorf("scan pacote: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
