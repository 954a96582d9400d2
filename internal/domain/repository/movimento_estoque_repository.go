package repository

import (
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TotaisItem agrega as somas de entrada e saída de um item, a dobra do
// projetor empurrada para o SQL.
type TotaisItem struct {
	ItemID       string
	TotalEntrada decimal.Decimal
	TotalSaida   decimal.Decimal
}

// MovimentoEstoqueRepository define o porto de persistência do razão de
// estoque. Movimentos são imutáveis: não há Update nem Delete.
type MovimentoEstoqueRepository interface {
	Create(movimento *entity.MovimentoEstoque) error
	// ListByDocumento devolve os movimentos originais do documento, sem os
	// compensatórios de estorno.
	ListByDocumento(documentoID string) ([]*entity.MovimentoEstoque, error)
	// TotaisPorItem soma entradas e saídas do item no snapshot corrente.
	TotaisPorItem(itemID string) (*TotaisItem, error)
	// Totais soma entradas e saídas de todos os itens com movimento.
	Totais() ([]TotaisItem, error)
}
