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

var _ repository.AgendamentoSessaoRepository = (*AgendamentoSessaoRepo)(nil)

const sessaoColunas = `id, pacote_tratamento_id, paciente_id, data_agendamento, horario_inicio,
	horario_fim, local_atendimento_id, status_sessao, numero_sessao, observacoes, criado_em, atualizado_em, seq`

// AgendamentoSessaoRepo implementação sobre PostgreSQL (usável com pool ou tx).
type AgendamentoSessaoRepo struct {
	q Querier
}

// NewAgendamentoSessaoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAgendamentoSessaoRepository(q Querier) *AgendamentoSessaoRepo {
	return &AgendamentoSessaoRepo{q: q}
}

// Create persiste um agendamento; seq vem da sequência do banco (BIGSERIAL).
func (r *AgendamentoSessaoRepo) Create(sessao *entity.AgendamentoSessao) error {
	if sessao.ID == "" {
		sessao.ID = uuid.New().String()
	}
	query := `
		INSERT INTO agendamentos_sessao (id, pacote_tratamento_id, paciente_id, data_agendamento,
			horario_inicio, horario_fim, local_atendimento_id, status_sessao, numero_sessao,
			observacoes, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		sessao.ID, sessao.PacoteTratamentoID, sessao.PacienteID, sessao.DataAgendamento,
		sessao.HorarioInicio, sessao.HorarioFim, sessao.LocalAtendimentoID, sessao.StatusSessao,
		sessao.NumeroSessao, sessao.Observacoes, sessao.CriadoEm, sessao.AtualizadoEm,
	).Scan(&sessao.Seq)
	if err != nil {
		return fmt.Errorf("create agendamento: %w", err)
	}
	return nil
}

// GetByID obtém um agendamento por ID.
func (r *AgendamentoSessaoRepo) GetByID(id string) (*entity.AgendamentoSessao, error) {
	query := `SELECT ` + sessaoColunas + ` FROM agendamentos_sessao WHERE id = $1`
	var s entity.AgendamentoSessao
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.PacoteTratamentoID, &s.PacienteID, &s.DataAgendamento, &s.HorarioInicio,
		&s.HorarioFim, &s.LocalAtendimentoID, &s.StatusSessao, &s.NumeroSessao,
		&s.Observacoes, &s.CriadoEm, &s.AtualizadoEm, &s.Seq,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agendamento: %w", err)
	}
	return &s, nil
}

// List lista todos os agendamentos em ordem de criação.
func (r *AgendamentoSessaoRepo) List() ([]*entity.AgendamentoSessao, error) {
	query := `SELECT ` + sessaoColunas + ` FROM agendamentos_sessao ORDER BY seq ASC`
	return r.list(query)
}

// ListByPacote devolve o histórico do pacote ordenado por seq.
func (r *AgendamentoSessaoRepo) ListByPacote(pacoteID string) ([]*entity.AgendamentoSessao, error) {
	query := `SELECT ` + sessaoColunas + ` FROM agendamentos_sessao WHERE pacote_tratamento_id = $1 ORDER BY seq ASC`
	return r.list(query, pacoteID)
}

// CountByStatus conta sessões do pacote nos status informados.
func (r *AgendamentoSessaoRepo) CountByStatus(pacoteID string, status ...string) (int, error) {
	query := `SELECT COUNT(*) FROM agendamentos_sessao WHERE pacote_tratamento_id = $1 AND status_sessao = ANY($2)`
	var count int
	err := r.q.QueryRow(context.Background(), query, pacoteID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count agendamentos: %w", err)
	}
	return count, nil
}

// UpdateStatus atualiza o status do agendamento.
func (r *AgendamentoSessaoRepo) UpdateStatus(id, status string) error {
	query := `UPDATE agendamentos_sessao SET status_sessao = $2, atualizado_em = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update status agendamento: %w", err)
	}
	return nil
}

func (r *AgendamentoSessaoRepo) list(query string, args ...any) ([]*entity.AgendamentoSessao, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agendamentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.AgendamentoSessao
	for rows.Next() {
		var s entity.AgendamentoSessao
		if err := rows.Scan(
			&s.ID, &s.PacoteTratamentoID, &s.PacienteID, &s.DataAgendamento, &s.HorarioInicio,
			&s.HorarioFim, &s.LocalAtendimentoID, &s.StatusSessao, &s.NumeroSessao,
			&s.Observacoes, &s.CriadoEm, &s.AtualizadoEm, &s.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan agendamento: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
