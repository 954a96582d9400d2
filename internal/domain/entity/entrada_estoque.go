package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntradaEstoque é o documento de entrada: um lote de itens recebidos de um
// fornecedor, gravado atomicamente (um movimento por item na mesma transação).
type EntradaEstoque struct {
	ID           string
	FornecedorID string
	DataEntrada  time.Time
	Observacoes  string
	Estornada    bool
	CriadoEm     time.Time
	Itens        []ItemEntradaEstoque
}

// ItemEntradaEstoque é uma linha do documento de entrada.
type ItemEntradaEstoque struct {
	ItemID        string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	MovimentoID   string
}
