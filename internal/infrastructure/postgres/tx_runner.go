package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seu-usuario/clinica-ledger/internal/application/estoque"
	"github.com/seu-usuario/clinica-ledger/internal/application/sessoes"
	"github.com/seu-usuario/clinica-ledger/internal/domain"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

// Ensure TxRunner implements sessoes.TxRunner and estoque.TxRunner.
var _ sessoes.TxRunner = (*TxRunner)(nil)
var _ estoque.TxRunner = (*TxRunner)(nil)

const maxTxRetries = 3

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
// Deadlocks e falhas de serialização são reexecutados até maxTxRetries
// vezes; se persistirem, viram domain.ErrConflitoConcorrencia.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSessoes inicia uma transação com os repositórios do razão de sessões.
func (r *TxRunner) RunSessoes(ctx context.Context, fn func(
	pacotes repository.PacoteTratamentoRepository,
	sessoes repository.AgendamentoSessaoRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewPacoteTratamentoRepository(tx), NewAgendamentoSessaoRepository(tx))
	})
}

// RunEstoque inicia uma transação com os repositórios do razão de estoque.
func (r *TxRunner) RunEstoque(ctx context.Context, fn func(
	movimentos repository.MovimentoEstoqueRepository,
	estoques repository.EstoqueRepository,
	entradas repository.EntradaEstoqueRepository,
	saidas repository.SaidaEstoqueRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(
			NewMovimentoEstoqueRepository(tx),
			NewEstoqueRepository(tx),
			NewEntradaEstoqueRepository(tx),
			NewSaidaEstoqueRepository(tx),
		)
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx Querier) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrConflitoConcorrencia, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
