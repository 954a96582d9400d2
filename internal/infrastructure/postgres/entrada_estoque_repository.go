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

var _ repository.EntradaEstoqueRepository = (*EntradaEstoqueRepo)(nil)

// EntradaEstoqueRepo implementação sobre PostgreSQL (usável com pool ou tx).
// Persiste só o cabeçalho; as linhas vivem no razão (movimentos_estoque)
// e são reconstruídas a partir dele.
type EntradaEstoqueRepo struct {
	q Querier
}

// NewEntradaEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEntradaEstoqueRepository(q Querier) *EntradaEstoqueRepo {
	return &EntradaEstoqueRepo{q: q}
}

// Create persiste o cabeçalho do documento de entrada.
func (r *EntradaEstoqueRepo) Create(entrada *entity.EntradaEstoque) error {
	if entrada.ID == "" {
		entrada.ID = uuid.New().String()
	}
	query := `
		INSERT INTO entradas_estoque (id, fornecedor_id, data_entrada, observacoes, estornada, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entrada.ID, entrada.FornecedorID, entrada.DataEntrada,
		entrada.Observacoes, entrada.Estornada, entrada.CriadoEm,
	)
	if err != nil {
		return fmt.Errorf("create entrada: %w", err)
	}
	return nil
}

// GetByID obtém um documento de entrada com suas linhas.
func (r *EntradaEstoqueRepo) GetByID(id string) (*entity.EntradaEstoque, error) {
	query := `SELECT id, fornecedor_id, data_entrada, observacoes, estornada, criado_em
		FROM entradas_estoque WHERE id = $1`
	var e entity.EntradaEstoque
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.FornecedorID, &e.DataEntrada, &e.Observacoes, &e.Estornada, &e.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrada: %w", err)
	}
	if err := r.carregarItens(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List lista os documentos de entrada com suas linhas, mais recentes primeiro.
func (r *EntradaEstoqueRepo) List() ([]*entity.EntradaEstoque, error) {
	query := `SELECT id, fornecedor_id, data_entrada, observacoes, estornada, criado_em
		FROM entradas_estoque ORDER BY criado_em DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list entradas: %w", err)
	}
	defer rows.Close()
	var list []*entity.EntradaEstoque
	for rows.Next() {
		var e entity.EntradaEstoque
		if err := rows.Scan(&e.ID, &e.FornecedorID, &e.DataEntrada, &e.Observacoes, &e.Estornada, &e.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan entrada: %w", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, e := range list {
		if err := r.carregarItens(e); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// MarcarEstornada marca o documento como estornado.
func (r *EntradaEstoqueRepo) MarcarEstornada(id string) error {
	query := `UPDATE entradas_estoque SET estornada = TRUE WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("marcar entrada estornada: %w", err)
	}
	return nil
}

func (r *EntradaEstoqueRepo) carregarItens(e *entity.EntradaEstoque) error {
	query := `SELECT id, item_id, quantidade, valor_unitario FROM movimentos_estoque
		WHERE documento_id = $1 AND tipo = $2 ORDER BY seq ASC`
	rows, err := r.q.Query(context.Background(), query, e.ID, entity.MovimentoEntrada)
	if err != nil {
		return fmt.Errorf("linhas da entrada: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var linha entity.ItemEntradaEstoque
		if err := rows.Scan(&linha.MovimentoID, &linha.ItemID, &linha.Quantidade, &linha.ValorUnitario); err != nil {
			return fmt.Errorf("scan linha da entrada: %w", err)
		}
		e.Itens = append(e.Itens, linha)
	}
	return rows.Err()
}
