package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/ledger"
)

func sessao(status string, seq int64) entity.AgendamentoSessao {
	return entity.AgendamentoSessao{ID: "s", StatusSessao: status, Seq: seq}
}

func TestProjetarPacoteContaApenasRealizadas(t *testing.T) {
	sessoes := []entity.AgendamentoSessao{
		sessao(entity.SessaoRealizada, 1),
		sessao(entity.SessaoAgendada, 2),
		sessao(entity.SessaoCancelada, 3),
		sessao(entity.SessaoRemarcada, 4),
		sessao(entity.SessaoRealizada, 5),
	}

	saldo := ledger.ProjetarPacote(6, sessoes)

	assert.Equal(t, 2, saldo.SessoesRealizadas)
	assert.Equal(t, 4, saldo.SessoesRestantes)
	assert.InDelta(t, 33.33, saldo.PercentualConcluido, 0.01)
}

func TestProjetarPacoteCompleto(t *testing.T) {
	sessoes := make([]entity.AgendamentoSessao, 0, 6)
	for i := 0; i < 6; i++ {
		sessoes = append(sessoes, sessao(entity.SessaoRealizada, int64(i+1)))
	}

	saldo := ledger.ProjetarPacote(6, sessoes)

	assert.Equal(t, 6, saldo.SessoesRealizadas)
	assert.Equal(t, 0, saldo.SessoesRestantes)
	assert.Equal(t, 100.0, saldo.PercentualConcluido)
}

func TestProjetarPacoteVazio(t *testing.T) {
	saldo := ledger.ProjetarPacote(10, nil)

	assert.Equal(t, 0, saldo.SessoesRealizadas)
	assert.Equal(t, 10, saldo.SessoesRestantes)
	assert.Equal(t, 0.0, saldo.PercentualConcluido)
}

// O invariante central: 0 <= realizadas <= contratadas e
// restantes = contratadas - realizadas, para qualquer histórico.
func TestProjetarPacoteInvariantes(t *testing.T) {
	sessoes := []entity.AgendamentoSessao{
		sessao(entity.SessaoRealizada, 1),
		sessao(entity.SessaoRealizada, 2),
		sessao(entity.SessaoRealizada, 3),
	}
	saldo := ledger.ProjetarPacote(3, sessoes)

	require.GreaterOrEqual(t, saldo.SessoesRealizadas, 0)
	require.LessOrEqual(t, saldo.SessoesRealizadas, 3)
	assert.Equal(t, 3-saldo.SessoesRealizadas, saldo.SessoesRestantes)
}

func TestProjetarPacoteIdempotente(t *testing.T) {
	sessoes := []entity.AgendamentoSessao{
		sessao(entity.SessaoRealizada, 1),
		sessao(entity.SessaoAgendada, 2),
	}

	primeiro := ledger.ProjetarPacote(4, sessoes)
	segundo := ledger.ProjetarPacote(4, sessoes)

	assert.Equal(t, primeiro, segundo)
}

func mov(itemID, tipo string, qtd string, seq int64) entity.MovimentoEstoque {
	return entity.MovimentoEstoque{
		ID:         "m",
		ItemID:     itemID,
		Tipo:       tipo,
		Quantidade: decimal.RequireFromString(qtd),
		Seq:        seq,
	}
}

func TestProjetarEstoqueSomaEntradasESaidas(t *testing.T) {
	movimentos := []entity.MovimentoEstoque{
		mov("item-1", entity.MovimentoEntrada, "10", 1),
		mov("item-1", entity.MovimentoSaida, "-3", 2),
		mov("item-1", entity.MovimentoEntrada, "5.5", 3),
		mov("item-2", entity.MovimentoEntrada, "99", 4), // outro item, ignorado
	}

	saldo := ledger.ProjetarEstoque("item-1", movimentos)

	assert.True(t, saldo.TotalEntrada.Equal(decimal.RequireFromString("15.5")))
	assert.True(t, saldo.TotalSaida.Equal(decimal.RequireFromString("3")))
	assert.True(t, saldo.QuantidadeAtual.Equal(decimal.RequireFromString("12.5")))
}

func TestProjetarEstoqueEstornos(t *testing.T) {
	movimentos := []entity.MovimentoEstoque{
		mov("item-1", entity.MovimentoEntrada, "10", 1),
		mov("item-1", entity.MovimentoSaida, "-4", 2),
		// Estorno da saída devolve estoque (quantidade positiva).
		mov("item-1", entity.MovimentoEstornoSaida, "4", 3),
		// Estorno da entrada consome estoque (quantidade negativa).
		mov("item-1", entity.MovimentoEstornoEntrada, "-10", 4),
	}

	saldo := ledger.ProjetarEstoque("item-1", movimentos)

	assert.True(t, saldo.QuantidadeAtual.IsZero(), "saldo atual: %s", saldo.QuantidadeAtual)
}

func TestProjetarEstoqueIndependeDaOrdemDoSlice(t *testing.T) {
	a := []entity.MovimentoEstoque{
		mov("item-1", entity.MovimentoEntrada, "10", 1),
		mov("item-1", entity.MovimentoSaida, "-3", 2),
	}
	b := []entity.MovimentoEstoque{a[1], a[0]}

	saldoA := ledger.ProjetarEstoque("item-1", a)
	saldoB := ledger.ProjetarEstoque("item-1", b)

	assert.True(t, saldoA.QuantidadeAtual.Equal(saldoB.QuantidadeAtual))
	assert.True(t, saldoA.TotalEntrada.Equal(saldoB.TotalEntrada))
	assert.True(t, saldoA.TotalSaida.Equal(saldoB.TotalSaida))
}

func TestSaldoDeTotaisEquivaleADobra(t *testing.T) {
	movimentos := []entity.MovimentoEstoque{
		mov("item-1", entity.MovimentoEntrada, "7", 1),
		mov("item-1", entity.MovimentoSaida, "-2", 2),
	}

	dobra := ledger.ProjetarEstoque("item-1", movimentos)
	agregado := ledger.SaldoDeTotais("item-1", decimal.RequireFromString("7"), decimal.RequireFromString("2"))

	assert.True(t, dobra.QuantidadeAtual.Equal(agregado.QuantidadeAtual))
	assert.True(t, dobra.TotalEntrada.Equal(agregado.TotalEntrada))
	assert.True(t, dobra.TotalSaida.Equal(agregado.TotalSaida))
}
