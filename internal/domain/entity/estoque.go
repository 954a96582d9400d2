package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estoque é a linha materializada de saldo por item, atualizada na mesma
// transação de cada movimento. Serve para consultas rápidas e para o lock
// de linha (SELECT FOR UPDATE) que serializa o guard; a fonte de verdade
// continua sendo o histórico em movimentos_estoque.
type Estoque struct {
	ItemID       string
	Quantidade   decimal.Decimal
	AtualizadoEm time.Time
}
