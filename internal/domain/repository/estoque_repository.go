package repository

import "github.com/seu-usuario/clinica-ledger/internal/domain/entity"

// EstoqueRepository define o porto do saldo materializado por item.
// Usado dentro de transações: GetForUpdate é o lock que serializa o
// guard-depois-append por item.
type EstoqueRepository interface {
	GetForUpdate(itemID string) (*entity.Estoque, error)
	Upsert(estoque *entity.Estoque) error
}
