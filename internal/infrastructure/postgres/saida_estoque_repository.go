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

var _ repository.SaidaEstoqueRepository = (*SaidaEstoqueRepo)(nil)

// SaidaEstoqueRepo implementação sobre PostgreSQL (usável com pool ou tx).
// Como na entrada, só o cabeçalho é persistido aqui; as linhas são
// reconstruídas do razão. Saídas gravam quantidade negativa no movimento,
// a linha do documento expõe o valor absoluto.
type SaidaEstoqueRepo struct {
	q Querier
}

// NewSaidaEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSaidaEstoqueRepository(q Querier) *SaidaEstoqueRepo {
	return &SaidaEstoqueRepo{q: q}
}

// Create persiste o cabeçalho do documento de saída.
func (r *SaidaEstoqueRepo) Create(saida *entity.SaidaEstoque) error {
	if saida.ID == "" {
		saida.ID = uuid.New().String()
	}
	query := `
		INSERT INTO saidas_estoque (id, agendamento_id, data_saida, observacoes, estornada, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		saida.ID, saida.AgendamentoID, saida.DataSaida,
		saida.Observacoes, saida.Estornada, saida.CriadoEm,
	)
	if err != nil {
		return fmt.Errorf("create saida: %w", err)
	}
	return nil
}

// GetByID obtém um documento de saída com suas linhas.
func (r *SaidaEstoqueRepo) GetByID(id string) (*entity.SaidaEstoque, error) {
	query := `SELECT id, agendamento_id, data_saida, observacoes, estornada, criado_em
		FROM saidas_estoque WHERE id = $1`
	var s entity.SaidaEstoque
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.AgendamentoID, &s.DataSaida, &s.Observacoes, &s.Estornada, &s.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get saida: %w", err)
	}
	if err := r.carregarItens(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// List lista os documentos de saída com suas linhas, mais recentes primeiro.
func (r *SaidaEstoqueRepo) List() ([]*entity.SaidaEstoque, error) {
	query := `SELECT id, agendamento_id, data_saida, observacoes, estornada, criado_em
		FROM saidas_estoque ORDER BY criado_em DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list saidas: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaidaEstoque
	for rows.Next() {
		var s entity.SaidaEstoque
		if err := rows.Scan(&s.ID, &s.AgendamentoID, &s.DataSaida, &s.Observacoes, &s.Estornada, &s.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan saida: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		if err := r.carregarItens(s); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// MarcarEstornada marca o documento como estornado.
func (r *SaidaEstoqueRepo) MarcarEstornada(id string) error {
	query := `UPDATE saidas_estoque SET estornada = TRUE WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("marcar saida estornada: %w", err)
	}
	return nil
}

func (r *SaidaEstoqueRepo) carregarItens(s *entity.SaidaEstoque) error {
	query := `SELECT id, item_id, ABS(quantidade) FROM movimentos_estoque
		WHERE documento_id = $1 AND tipo = $2 ORDER BY seq ASC`
	rows, err := r.q.Query(context.Background(), query, s.ID, entity.MovimentoSaida)
	if err != nil {
		return fmt.Errorf("linhas da saida: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var linha entity.ItemSaidaEstoque
		if err := rows.Scan(&linha.MovimentoID, &linha.ItemID, &linha.Quantidade); err != nil {
			return fmt.Errorf("scan linha da saida: %w", err)
		}
		s.Itens = append(s.Itens, linha)
	}
	return rows.Err()
}
