package repository

import "github.com/seu-usuario/clinica-ledger/internal/domain/entity"

// SaidaEstoqueRepository define o porto dos documentos de saída.
type SaidaEstoqueRepository interface {
	Create(saida *entity.SaidaEstoque) error
	GetByID(id string) (*entity.SaidaEstoque, error)
	List() ([]*entity.SaidaEstoque, error)
	MarcarEstornada(id string) error
}
