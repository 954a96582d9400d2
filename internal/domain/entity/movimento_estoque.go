package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovimentoEntrada        = "entrada"
	MovimentoSaida          = "saida"
	MovimentoEstornoEntrada = "estorno_entrada"
	MovimentoEstornoSaida   = "estorno_saida"
)

// MovimentoEstoque é um lançamento append-only do razão de estoque.
// Quantidade é assinada: positiva adiciona estoque (entrada, estorno de
// saída), negativa consome (saída, estorno de entrada). Movimentos nunca
// são editados nem apagados; correções entram como estorno referenciando
// o movimento de origem em EstornoDe.
type MovimentoEstoque struct {
	ID            string
	ItemID        string
	Tipo          string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	DocumentoID   string // entrada ou saída de estoque que originou o movimento
	EstornoDe     string // ID do movimento estornado, vazio se não for estorno
	Data          time.Time
	CriadoEm      time.Time
	Seq           int64
}
