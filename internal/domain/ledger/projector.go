// Package ledger concentra a lógica pura do razão de consumo: projeção de
// saldos a partir do histórico de movimentos e autorização de novos
// movimentos contra o saldo projetado. Nenhuma função aqui tem efeito
// colateral; persistência e serialização ficam na camada de aplicação.
package ledger

import (
	"sort"

	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaldoPacote é o saldo derivado de um pacote de tratamento.
type SaldoPacote struct {
	SessoesRealizadas   int
	SessoesRestantes    int
	PercentualConcluido float64
}

// SaldoEstoque é o saldo derivado de um item de estoque.
type SaldoEstoque struct {
	ItemID          string
	TotalEntrada    decimal.Decimal
	TotalSaida      decimal.Decimal
	QuantidadeAtual decimal.Decimal
}

// ProjetarPacote dobra o histórico de sessões de um pacote e devolve o saldo.
// Só sessões com status realizada consomem a franquia; agendada, cancelada e
// remarcada não contam. Determinística e idempotente: o mesmo histórico
// produz sempre o mesmo saldo.
func ProjetarPacote(contratadas int, sessoes []entity.AgendamentoSessao) SaldoPacote {
	realizadas := 0
	for _, s := range sessoes {
		if s.StatusSessao == entity.SessaoRealizada {
			realizadas++
		}
	}
	return SaldoDePacote(contratadas, realizadas)
}

// SaldoDePacote monta o saldo a partir do realizado já agregado (a versão SQL
// da dobra: COUNT(*) WHERE status_sessao = 'realizada').
func SaldoDePacote(contratadas, realizadas int) SaldoPacote {
	saldo := SaldoPacote{
		SessoesRealizadas: realizadas,
		SessoesRestantes:  contratadas - realizadas,
	}
	if contratadas > 0 {
		saldo.PercentualConcluido = float64(realizadas) / float64(contratadas) * 100
	}
	return saldo
}

// ProjetarEstoque dobra o histórico de movimentos de um item, em ordem de
// sequência de criação, e devolve o saldo. Movimentos com quantidade
// positiva (entrada, estorno de saída) somam em TotalEntrada; negativos
// (saída, estorno de entrada) somam em TotalSaida.
func ProjetarEstoque(itemID string, movimentos []entity.MovimentoEstoque) SaldoEstoque {
	ordenados := make([]entity.MovimentoEstoque, len(movimentos))
	copy(ordenados, movimentos)
	sort.SliceStable(ordenados, func(i, j int) bool { return ordenados[i].Seq < ordenados[j].Seq })

	totalEntrada := decimal.Zero
	totalSaida := decimal.Zero
	for _, m := range ordenados {
		if m.ItemID != itemID {
			continue
		}
		if m.Quantidade.IsNegative() {
			totalSaida = totalSaida.Add(m.Quantidade.Neg())
		} else {
			totalEntrada = totalEntrada.Add(m.Quantidade)
		}
	}
	return SaldoDeTotais(itemID, totalEntrada, totalSaida)
}

// SaldoDeTotais monta o saldo a partir dos totais já agregados (a versão SQL
// da dobra: SUM por sinal da quantidade).
func SaldoDeTotais(itemID string, totalEntrada, totalSaida decimal.Decimal) SaldoEstoque {
	return SaldoEstoque{
		ItemID:          itemID,
		TotalEntrada:    totalEntrada,
		TotalSaida:      totalSaida,
		QuantidadeAtual: totalEntrada.Sub(totalSaida),
	}
}
