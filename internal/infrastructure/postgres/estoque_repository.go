package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

var _ repository.EstoqueRepository = (*EstoqueRepo)(nil)

// EstoqueRepo implementação sobre PostgreSQL (usável com pool ou tx).
type EstoqueRepo struct {
	q Querier
}

// NewEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEstoqueRepository(q Querier) *EstoqueRepo {
	return &EstoqueRepo{q: q}
}

// GetForUpdate obtém o saldo bloqueando a linha (SELECT FOR UPDATE). É o
// lock que serializa o ciclo guard-depois-append por item; a primeira
// entrada de um item ainda sem linha não bloqueia nada, o que é seguro
// porque entradas nunca são rejeitadas por saldo.
func (r *EstoqueRepo) GetForUpdate(itemID string) (*entity.Estoque, error) {
	query := `SELECT item_id, quantidade, atualizado_em FROM estoque WHERE item_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, itemID))
}

// Upsert grava o saldo materializado do item.
func (r *EstoqueRepo) Upsert(estoque *entity.Estoque) error {
	query := `
		INSERT INTO estoque (item_id, quantidade, atualizado_em)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO UPDATE
		SET quantidade = EXCLUDED.quantidade, atualizado_em = EXCLUDED.atualizado_em`
	_, err := r.q.Exec(context.Background(), query,
		estoque.ItemID, estoque.Quantidade, estoque.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("upsert estoque: %w", err)
	}
	return nil
}

func (r *EstoqueRepo) scanOne(row pgx.Row) (*entity.Estoque, error) {
	var e entity.Estoque
	err := row.Scan(&e.ItemID, &e.Quantidade, &e.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estoque: %w", err)
	}
	return &e, nil
}
