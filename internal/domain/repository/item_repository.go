package repository

import "github.com/seu-usuario/clinica-ledger/internal/domain/entity"

// ItemRepository define o porto de persistência dos itens de estoque.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	List() ([]*entity.Item, error)
}
