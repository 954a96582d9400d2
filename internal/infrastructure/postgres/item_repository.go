package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/seu-usuario/clinica-ledger/internal/domain"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementação sobre PostgreSQL (usável com pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste um item de estoque. Nome duplicado vira ErrEntradaInvalida.
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO itens (id, nome, descricao, unidade, criado_em)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Nome, item.Descricao, item.Unidade, item.CriadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %q já cadastrado", domain.ErrEntradaInvalida, item.Nome)
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtém um item por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT id, nome, descricao, unidade, criado_em FROM itens WHERE id = $1`
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Nome, &i.Descricao, &i.Unidade, &i.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// List lista os itens em ordem alfabética.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `SELECT id, nome, descricao, unidade, criado_em FROM itens ORDER BY nome ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list itens: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.Nome, &i.Descricao, &i.Unidade, &i.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
