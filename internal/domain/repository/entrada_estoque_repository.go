package repository

import "github.com/seu-usuario/clinica-ledger/internal/domain/entity"

// EntradaEstoqueRepository define o porto dos documentos de entrada.
// As linhas do documento vivem no razão (movimentos_estoque); aqui fica
// só o cabeçalho e a marca de estorno.
type EntradaEstoqueRepository interface {
	Create(entrada *entity.EntradaEstoque) error
	GetByID(id string) (*entity.EntradaEstoque, error)
	List() ([]*entity.EntradaEstoque, error)
	MarcarEstornada(id string) error
}
