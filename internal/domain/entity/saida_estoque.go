package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaidaEstoque é o documento de saída: itens consumidos por um agendamento
// clínico. Todas as linhas passam pelo guard e são gravadas na mesma
// transação; se uma linha não tem saldo, o documento inteiro é rejeitado.
type SaidaEstoque struct {
	ID            string
	AgendamentoID string
	DataSaida     time.Time
	Observacoes   string
	Estornada     bool
	CriadoEm      time.Time
	Itens         []ItemSaidaEstoque
}

// ItemSaidaEstoque é uma linha do documento de saída.
type ItemSaidaEstoque struct {
	ItemID      string
	Quantidade  decimal.Decimal
	MovimentoID string
}
