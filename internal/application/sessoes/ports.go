package sessoes

import (
	"context"

	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que guard, append e atualização
// de status do pacote sejam atômicos por concessão.
type TxRunner interface {
	RunSessoes(ctx context.Context, fn func(
		pacotes repository.PacoteTratamentoRepository,
		sessoes repository.AgendamentoSessaoRepository,
	) error) error
}
