package estoque_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/clinica-ledger/internal/application/estoque"
	"github.com/seu-usuario/clinica-ledger/internal/domain"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
)

func novoUseCase(t *testing.T) (*estoque.UseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	uc := estoque.NewUseCase(
		&memTxRunner{s: store},
		&memItemRepo{s: store},
		&memMovimentoRepo{s: store},
		&memEntradaRepo{s: store},
		&memSaidaRepo{s: store},
	)
	return uc, store
}

func criarItem(t *testing.T, uc *estoque.UseCase, nome string) *entity.Item {
	t.Helper()
	item, err := uc.CriarItem(context.Background(), nome, "", "un")
	require.NoError(t, err)
	return item
}

func registrarEntrada(t *testing.T, uc *estoque.UseCase, itemID string, qtd int64) {
	t.Helper()
	_, err := uc.RegistrarEntrada(context.Background(), estoque.RegistrarEntradaInput{
		FornecedorID: "fornecedor-1",
		DataEntrada:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: itemID, Quantidade: decimal.NewFromInt(qtd), ValorUnitario: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
}

func registrarSaida(uc *estoque.UseCase, itemID string, qtd int64) error {
	_, err := uc.RegistrarSaida(context.Background(), estoque.RegistrarSaidaInput{
		AgendamentoID: "agendamento-1",
		DataSaida:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: itemID, Quantidade: decimal.NewFromInt(qtd)},
		},
	})
	return err
}

func saldoAtual(t *testing.T, uc *estoque.UseCase, itemID string) decimal.Decimal {
	t.Helper()
	atual, err := uc.EstoqueAtualItem(context.Background(), itemID)
	require.NoError(t, err)
	return atual.Saldo.QuantidadeAtual
}

func TestCriarItemNomeObrigatorio(t *testing.T) {
	uc, _ := novoUseCase(t)
	_, err := uc.CriarItem(context.Background(), "", "", "")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestRegistrarEntradaQuantidadeInvalida(t *testing.T) {
	uc, _ := novoUseCase(t)
	item := criarItem(t, uc, "Luvas")

	_, err := uc.RegistrarEntrada(context.Background(), estoque.RegistrarEntradaInput{
		FornecedorID: "fornecedor-1",
		DataEntrada:  time.Now(),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: item.ID, Quantidade: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = uc.RegistrarEntrada(context.Background(), estoque.RegistrarEntradaInput{
		FornecedorID: "fornecedor-1",
		DataEntrada:  time.Now(),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: item.ID, Quantidade: decimal.NewFromInt(-2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestRegistrarEntradaItemInexistente(t *testing.T) {
	uc, _ := novoUseCase(t)

	_, err := uc.RegistrarEntrada(context.Background(), estoque.RegistrarEntradaInput{
		FornecedorID: "fornecedor-1",
		DataEntrada:  time.Now(),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: "nao-existe", Quantidade: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

// Ida e volta: entrada de 10, saída de 10, saldo zero; a saída seguinte
// falha com estoque insuficiente e deixa o saldo intacto.
func TestEntradaSaidaIdaEVolta(t *testing.T) {
	uc, _ := novoUseCase(t)
	item := criarItem(t, uc, "Agulhas")

	registrarEntrada(t, uc, item.ID, 10)
	require.NoError(t, registrarSaida(uc, item.ID, 10))

	assert.True(t, saldoAtual(t, uc, item.ID).IsZero())

	err := registrarSaida(uc, item.ID, 1)
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
	assert.True(t, saldoAtual(t, uc, item.ID).IsZero())
}

func TestSaidaMaiorQueSaldoRejeitada(t *testing.T) {
	uc, _ := novoUseCase(t)
	item := criarItem(t, uc, "Seringas")
	registrarEntrada(t, uc, item.ID, 5)

	err := registrarSaida(uc, item.ID, 6)
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
	assert.True(t, saldoAtual(t, uc, item.ID).Equal(decimal.NewFromInt(5)))
}

// Documento com várias linhas é tudo-ou-nada: se uma linha não tem saldo,
// nenhuma das outras persiste.
func TestSaidaEmLoteAtomica(t *testing.T) {
	uc, store := novoUseCase(t)
	luvas := criarItem(t, uc, "Luvas")
	gaze := criarItem(t, uc, "Gaze")
	registrarEntrada(t, uc, luvas.ID, 10)
	registrarEntrada(t, uc, gaze.ID, 2)

	_, err := uc.RegistrarSaida(context.Background(), estoque.RegistrarSaidaInput{
		AgendamentoID: "agendamento-1",
		DataSaida:     time.Now(),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: luvas.ID, Quantidade: decimal.NewFromInt(4)},
			{ItemID: gaze.ID, Quantidade: decimal.NewFromInt(5)}, // sem saldo
		},
	})
	require.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)

	assert.True(t, saldoAtual(t, uc, luvas.ID).Equal(decimal.NewFromInt(10)))
	assert.True(t, saldoAtual(t, uc, gaze.ID).Equal(decimal.NewFromInt(2)))

	saidas, err := uc.ListarSaidas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, saidas, "documento rejeitado não pode persistir")
	assert.Len(t, store.movimentos, 2, "só os movimentos das entradas")
}

func TestEstornarSaidaDevolveEstoque(t *testing.T) {
	uc, _ := novoUseCase(t)
	item := criarItem(t, uc, "Luvas")
	registrarEntrada(t, uc, item.ID, 10)

	doc, err := uc.RegistrarSaida(context.Background(), estoque.RegistrarSaidaInput{
		AgendamentoID: "agendamento-1",
		DataSaida:     time.Now(),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: item.ID, Quantidade: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	require.True(t, saldoAtual(t, uc, item.ID).Equal(decimal.NewFromInt(6)))

	require.NoError(t, uc.EstornarSaida(context.Background(), doc.ID))
	assert.True(t, saldoAtual(t, uc, item.ID).Equal(decimal.NewFromInt(10)))

	// O estorno é uma compensação única; repetir é rejeitado.
	err = uc.EstornarSaida(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentoJaEstornado)
	assert.True(t, saldoAtual(t, uc, item.ID).Equal(decimal.NewFromInt(10)))
}

func TestEstornarEntradaComEstoqueJaConsumido(t *testing.T) {
	uc, _ := novoUseCase(t)
	item := criarItem(t, uc, "Gaze")

	doc, err := uc.RegistrarEntrada(context.Background(), estoque.RegistrarEntradaInput{
		FornecedorID: "fornecedor-1",
		DataEntrada:  time.Now(),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: item.ID, Quantidade: decimal.NewFromInt(10), ValorUnitario: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, registrarSaida(uc, item.ID, 8))

	// Só restam 2 em estoque; estornar a entrada de 10 deixaria o saldo
	// negativo, então o estorno é rejeitado.
	err = uc.EstornarEntrada(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
	assert.True(t, saldoAtual(t, uc, item.ID).Equal(decimal.NewFromInt(2)))
}

func TestEstornarEntradaSemConsumo(t *testing.T) {
	uc, _ := novoUseCase(t)
	item := criarItem(t, uc, "Gaze")

	doc, err := uc.RegistrarEntrada(context.Background(), estoque.RegistrarEntradaInput{
		FornecedorID: "fornecedor-1",
		DataEntrada:  time.Now(),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: item.ID, Quantidade: decimal.NewFromInt(10), ValorUnitario: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.EstornarEntrada(context.Background(), doc.ID))
	assert.True(t, saldoAtual(t, uc, item.ID).IsZero())
}

// Saídas concorrentes disputando o último saldo: exatamente uma passa.
func TestSaidasConcorrentes(t *testing.T) {
	uc, _ := novoUseCase(t)
	item := criarItem(t, uc, "Soro")
	registrarEntrada(t, uc, item.ID, 1)

	const n = 8
	var wg sync.WaitGroup
	erros := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			erros <- registrarSaida(uc, item.ID, 1)
		}()
	}
	wg.Wait()
	close(erros)

	sucessos, insuficientes := 0, 0
	for err := range erros {
		switch {
		case err == nil:
			sucessos++
		case assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente):
			insuficientes++
		}
	}
	assert.Equal(t, 1, sucessos)
	assert.Equal(t, n-1, insuficientes)
	assert.True(t, saldoAtual(t, uc, item.ID).IsZero())
}

func TestEstoqueAtualListaItensSemMovimento(t *testing.T) {
	uc, _ := novoUseCase(t)
	comSaldo := criarItem(t, uc, "Luvas")
	semMovimento := criarItem(t, uc, "Soro")
	registrarEntrada(t, uc, comSaldo.ID, 3)

	saldos, err := uc.EstoqueAtual(context.Background())
	require.NoError(t, err)
	require.Len(t, saldos, 2)

	porItem := make(map[string]decimal.Decimal, 2)
	for _, s := range saldos {
		porItem[s.Item.ID] = s.Saldo.QuantidadeAtual
	}
	assert.True(t, porItem[comSaldo.ID].Equal(decimal.NewFromInt(3)))
	assert.True(t, porItem[semMovimento.ID].IsZero())
}

// O TxRunner reexecuta o callback quando a transação cai por falha de
// serialização. As linhas da tentativa desfeita não podem sobrar no
// documento devolvido nem no saldo.
func TestRegistrarComRetryNaoDuplicaLinhas(t *testing.T) {
	store := newMemStore()
	uc := estoque.NewUseCase(
		&replayTxRunner{s: store},
		&memItemRepo{s: store},
		&memMovimentoRepo{s: store},
		&memEntradaRepo{s: store},
		&memSaidaRepo{s: store},
	)
	item, err := uc.CriarItem(context.Background(), "Seringas", "", "un")
	require.NoError(t, err)

	entrada, err := uc.RegistrarEntrada(context.Background(), estoque.RegistrarEntradaInput{
		FornecedorID: "fornecedor-1",
		DataEntrada:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: item.ID, Quantidade: decimal.NewFromInt(5), ValorUnitario: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	require.Len(t, entrada.Itens, 1)
	assert.True(t, saldoAtual(t, uc, item.ID).Equal(decimal.NewFromInt(5)))

	saida, err := uc.RegistrarSaida(context.Background(), estoque.RegistrarSaidaInput{
		AgendamentoID: "agendamento-1",
		DataSaida:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Itens: []estoque.ItemMovimentoInput{
			{ItemID: item.ID, Quantidade: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	require.Len(t, saida.Itens, 1)
	assert.True(t, saldoAtual(t, uc, item.ID).Equal(decimal.NewFromInt(3)))
}
