package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/seu-usuario/clinica-ledger/internal/domain"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/ledger"
)

func pacote(status string) *entity.PacoteTratamento {
	return &entity.PacoteTratamento{ID: "p", NumeroSessoesContratadas: 6, StatusPacote: status}
}

func TestAutorizarAgendamento(t *testing.T) {
	assert.NoError(t, ledger.AutorizarAgendamento(pacote(entity.PacoteAtivo)))
	assert.ErrorIs(t, ledger.AutorizarAgendamento(pacote(entity.PacoteConcluido)), domain.ErrTransicaoInvalida)
	assert.ErrorIs(t, ledger.AutorizarAgendamento(pacote(entity.PacoteCancelado)), domain.ErrTransicaoInvalida)
}

func TestAutorizarRealizacao(t *testing.T) {
	comRestantes := ledger.SaldoDePacote(6, 5)
	esgotado := ledger.SaldoDePacote(6, 6)

	assert.NoError(t, ledger.AutorizarRealizacao(pacote(entity.PacoteAtivo), comRestantes))
	assert.ErrorIs(t, ledger.AutorizarRealizacao(pacote(entity.PacoteAtivo), esgotado), domain.ErrSessoesEsgotadas)
	assert.ErrorIs(t, ledger.AutorizarRealizacao(pacote(entity.PacoteCancelado), comRestantes), domain.ErrTransicaoInvalida)
}

func TestAutorizarTransicaoSessao(t *testing.T) {
	assert.NoError(t, ledger.AutorizarTransicaoSessao(entity.SessaoAgendada, entity.SessaoRealizada))
	assert.NoError(t, ledger.AutorizarTransicaoSessao(entity.SessaoAgendada, entity.SessaoCancelada))
	assert.NoError(t, ledger.AutorizarTransicaoSessao(entity.SessaoAgendada, entity.SessaoRemarcada))

	// Sessão realizada é fato histórico: nenhuma edição de status é aceita.
	assert.ErrorIs(t, ledger.AutorizarTransicaoSessao(entity.SessaoRealizada, entity.SessaoCancelada), domain.ErrTransicaoInvalida)
	assert.ErrorIs(t, ledger.AutorizarTransicaoSessao(entity.SessaoRealizada, entity.SessaoRemarcada), domain.ErrTransicaoInvalida)
	assert.ErrorIs(t, ledger.AutorizarTransicaoSessao(entity.SessaoCancelada, entity.SessaoRealizada), domain.ErrTransicaoInvalida)
	assert.ErrorIs(t, ledger.AutorizarTransicaoSessao(entity.SessaoRemarcada, entity.SessaoAgendada), domain.ErrTransicaoInvalida)
}

func TestAutorizarEstornoRealizacao(t *testing.T) {
	realizada := &entity.AgendamentoSessao{ID: "s", StatusSessao: entity.SessaoRealizada}
	agendada := &entity.AgendamentoSessao{ID: "s", StatusSessao: entity.SessaoAgendada}

	assert.NoError(t, ledger.AutorizarEstornoRealizacao(pacote(entity.PacoteAtivo), realizada))
	// Um pacote concluído pode ser reaberto pelo estorno.
	assert.NoError(t, ledger.AutorizarEstornoRealizacao(pacote(entity.PacoteConcluido), realizada))
	assert.ErrorIs(t, ledger.AutorizarEstornoRealizacao(pacote(entity.PacoteCancelado), realizada), domain.ErrTransicaoInvalida)
	assert.ErrorIs(t, ledger.AutorizarEstornoRealizacao(pacote(entity.PacoteAtivo), agendada), domain.ErrTransicaoInvalida)
}

func TestAutorizarTransicaoPacote(t *testing.T) {
	assert.NoError(t, ledger.AutorizarTransicaoPacote(entity.PacoteAtivo, entity.PacoteConcluido))
	assert.NoError(t, ledger.AutorizarTransicaoPacote(entity.PacoteAtivo, entity.PacoteCancelado))
	assert.ErrorIs(t, ledger.AutorizarTransicaoPacote(entity.PacoteConcluido, entity.PacoteAtivo), domain.ErrTransicaoInvalida)
	assert.ErrorIs(t, ledger.AutorizarTransicaoPacote(entity.PacoteCancelado, entity.PacoteConcluido), domain.ErrTransicaoInvalida)
}

func TestAutorizarEntrada(t *testing.T) {
	assert.NoError(t, ledger.AutorizarEntrada(decimal.NewFromInt(1)))
	assert.ErrorIs(t, ledger.AutorizarEntrada(decimal.Zero), domain.ErrEntradaInvalida)
	assert.ErrorIs(t, ledger.AutorizarEntrada(decimal.NewFromInt(-5)), domain.ErrEntradaInvalida)
}

func TestAutorizarSaida(t *testing.T) {
	saldo := ledger.SaldoDeTotais("item-1", decimal.NewFromInt(10), decimal.NewFromInt(4))

	assert.NoError(t, ledger.AutorizarSaida(saldo, decimal.NewFromInt(6)))
	assert.ErrorIs(t, ledger.AutorizarSaida(saldo, decimal.NewFromInt(7)), domain.ErrEstoqueInsuficiente)
	assert.ErrorIs(t, ledger.AutorizarSaida(saldo, decimal.Zero), domain.ErrEntradaInvalida)
	assert.ErrorIs(t, ledger.AutorizarSaida(saldo, decimal.NewFromInt(-1)), domain.ErrEntradaInvalida)
}

func TestAutorizarSaidaSaldoZerado(t *testing.T) {
	saldo := ledger.SaldoDeTotais("item-1", decimal.NewFromInt(10), decimal.NewFromInt(10))

	assert.ErrorIs(t, ledger.AutorizarSaida(saldo, decimal.NewFromInt(1)), domain.ErrEstoqueInsuficiente)
}
