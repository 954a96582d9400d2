package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

var _ repository.MovimentoEstoqueRepository = (*MovimentoEstoqueRepo)(nil)

const movimentoColunas = `id, item_id, tipo, quantidade, valor_unitario, documento_id, estorno_de, data, criado_em, seq`

// MovimentoEstoqueRepo implementação sobre PostgreSQL (usável com pool ou tx).
// Movimentos são imutáveis: o adaptador só insere e consulta.
type MovimentoEstoqueRepo struct {
	q Querier
}

// NewMovimentoEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentoEstoqueRepository(q Querier) *MovimentoEstoqueRepo {
	return &MovimentoEstoqueRepo{q: q}
}

// Create persiste um movimento; seq vem da sequência do banco (BIGSERIAL).
func (r *MovimentoEstoqueRepo) Create(movimento *entity.MovimentoEstoque) error {
	if movimento.ID == "" {
		movimento.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimentos_estoque (id, item_id, tipo, quantidade, valor_unitario, documento_id, estorno_de, data, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`
	documentoID := (*string)(nil)
	if movimento.DocumentoID != "" {
		documentoID = &movimento.DocumentoID
	}
	estornoDe := (*string)(nil)
	if movimento.EstornoDe != "" {
		estornoDe = &movimento.EstornoDe
	}
	err := r.q.QueryRow(context.Background(), query,
		movimento.ID, movimento.ItemID, movimento.Tipo, movimento.Quantidade,
		movimento.ValorUnitario, documentoID, estornoDe, movimento.Data, movimento.CriadoEm,
	).Scan(&movimento.Seq)
	if err != nil {
		return fmt.Errorf("create movimento: %w", err)
	}
	return nil
}

// ListByDocumento devolve os movimentos originais de um documento (sem os
// estornos), ordenados por seq.
func (r *MovimentoEstoqueRepo) ListByDocumento(documentoID string) ([]*entity.MovimentoEstoque, error) {
	query := `SELECT ` + movimentoColunas + ` FROM movimentos_estoque
		WHERE documento_id = $1 AND estorno_de IS NULL ORDER BY seq ASC`
	return r.list(query, documentoID)
}

// TotaisPorItem soma entradas e saídas do item no snapshot corrente.
// A dobra do razão empurrada para o SQL: positivos somam em entrada,
// negativos em saída (em valor absoluto).
func (r *MovimentoEstoqueRepo) TotaisPorItem(itemID string) (*repository.TotaisItem, error) {
	query := `
		SELECT
			COALESCE(SUM(quantidade) FILTER (WHERE quantidade > 0), 0),
			COALESCE(-SUM(quantidade) FILTER (WHERE quantidade < 0), 0)
		FROM movimentos_estoque WHERE item_id = $1`
	t := repository.TotaisItem{ItemID: itemID}
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(&t.TotalEntrada, &t.TotalSaida)
	if err != nil {
		return nil, fmt.Errorf("totais por item: %w", err)
	}
	return &t, nil
}

// Totais soma entradas e saídas de todos os itens com movimento.
func (r *MovimentoEstoqueRepo) Totais() ([]repository.TotaisItem, error) {
	query := `
		SELECT item_id,
			COALESCE(SUM(quantidade) FILTER (WHERE quantidade > 0), 0),
			COALESCE(-SUM(quantidade) FILTER (WHERE quantidade < 0), 0)
		FROM movimentos_estoque GROUP BY item_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("totais: %w", err)
	}
	defer rows.Close()
	var list []repository.TotaisItem
	for rows.Next() {
		var t repository.TotaisItem
		if err := rows.Scan(&t.ItemID, &t.TotalEntrada, &t.TotalSaida); err != nil {
			return nil, fmt.Errorf("scan totais: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *MovimentoEstoqueRepo) list(query string, args ...any) ([]*entity.MovimentoEstoque, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimentoEstoque
	for rows.Next() {
		var m entity.MovimentoEstoque
		var documentoID, estornoDe *string
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.Tipo, &m.Quantidade, &m.ValorUnitario,
			&documentoID, &estornoDe, &m.Data, &m.CriadoEm, &m.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		if documentoID != nil {
			m.DocumentoID = *documentoID
		}
		if estornoDe != nil {
			m.EstornoDe = *estornoDe
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
