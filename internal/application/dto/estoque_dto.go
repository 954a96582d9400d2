package dto

import "github.com/shopspring/decimal"

// CriarItemRequest body para POST /api/itens.
type CriarItemRequest struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
	Unidade   string `json:"unidade,omitempty"`
}

// ItemResponse read model do item de estoque.
type ItemResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
	Unidade   string `json:"unidade,omitempty"`
}

// ItemEntradaRequest linha de um documento de entrada.
type ItemEntradaRequest struct {
	ItemID        string          `json:"item_id"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
}

// RegistrarEntradaRequest body para POST /api/entradas-estoque.
// Todos os itens entram atomicamente sob o mesmo documento.
type RegistrarEntradaRequest struct {
	FornecedorID string               `json:"fornecedor_id"`
	DataEntrada  string               `json:"data_entrada"` // YYYY-MM-DD
	Observacoes  string               `json:"observacoes,omitempty"`
	Itens        []ItemEntradaRequest `json:"itens"`
}

// ItemSaidaRequest linha de um documento de saída.
type ItemSaidaRequest struct {
	ItemID     string          `json:"item_id"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// RegistrarSaidaRequest body para POST /api/saidas-estoque.
type RegistrarSaidaRequest struct {
	AgendamentoID string             `json:"agendamento_id"`
	DataSaida     string             `json:"data_saida"` // YYYY-MM-DD
	Observacoes   string             `json:"observacoes,omitempty"`
	Itens         []ItemSaidaRequest `json:"itens"`
}

// ItemDocumentoResponse linha de documento nas respostas de entrada/saída.
type ItemDocumentoResponse struct {
	ItemID        string          `json:"item_id"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario,omitempty"`
}

// DocumentoEstoqueResponse read model de um documento de entrada ou saída.
type DocumentoEstoqueResponse struct {
	ID            string                  `json:"id"`
	FornecedorID  string                  `json:"fornecedor_id,omitempty"`
	AgendamentoID string                  `json:"agendamento_id,omitempty"`
	Data          string                  `json:"data"`
	Observacoes   string                  `json:"observacoes,omitempty"`
	Estornada     bool                    `json:"estornada"`
	Itens         []ItemDocumentoResponse `json:"itens"`
}

// EstoqueAtualResponse read model do saldo atual por item.
type EstoqueAtualResponse struct {
	ItemID          string          `json:"item_id"`
	Nome            string          `json:"nome"`
	QuantidadeAtual decimal.Decimal `json:"quantidade_atual"`
	TotalEntrada    decimal.Decimal `json:"total_entrada"`
	TotalSaida      decimal.Decimal `json:"total_saida"`
}
