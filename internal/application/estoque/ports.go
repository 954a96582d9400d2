package estoque

import (
	"context"

	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. O lock nas linhas de estoque (por item,
// em ordem crescente de id) serializa o guard-depois-append do razão.
type TxRunner interface {
	RunEstoque(ctx context.Context, fn func(
		movimentos repository.MovimentoEstoqueRepository,
		estoques repository.EstoqueRepository,
		entradas repository.EntradaEstoqueRepository,
		saidas repository.SaidaEstoqueRepository,
	) error) error
}
