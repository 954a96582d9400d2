package ledger

import (
	"github.com/seu-usuario/clinica-ledger/internal/domain"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// O guard é uma função de decisão pura sobre um snapshot: recebe o saldo que
// o projetor derivou do mesmo histórico que a transação corrente enxerga e
// decide se o movimento proposto pode entrar. A atomicidade
// guard-depois-append por concessão é responsabilidade do chamador
// (lock de linha na transação, ver infrastructure/postgres).

// AutorizarAgendamento decide se uma nova sessão pode ser agendada no pacote.
// Agendar não consome a franquia; basta o pacote estar ativo.
func AutorizarAgendamento(pacote *entity.PacoteTratamento) error {
	if pacote.StatusPacote != entity.PacoteAtivo {
		return domain.ErrTransicaoInvalida
	}
	return nil
}

// AutorizarRealizacao decide se uma sessão pode ser marcada como realizada:
// o pacote precisa estar ativo e ter sessões restantes no saldo atual.
func AutorizarRealizacao(pacote *entity.PacoteTratamento, saldo SaldoPacote) error {
	if pacote.StatusPacote != entity.PacoteAtivo {
		return domain.ErrTransicaoInvalida
	}
	if saldo.SessoesRestantes <= 0 {
		return domain.ErrSessoesEsgotadas
	}
	return nil
}

// AutorizarTransicaoSessao valida a máquina de estados da sessão.
// agendada pode ir para realizada, cancelada ou remarcada; realizada é fato
// histórico e só sai por estorno explícito, nunca por edição de status.
func AutorizarTransicaoSessao(de, para string) error {
	if de == entity.SessaoAgendada {
		switch para {
		case entity.SessaoRealizada, entity.SessaoCancelada, entity.SessaoRemarcada:
			return nil
		}
	}
	return domain.ErrTransicaoInvalida
}

// AutorizarEstornoRealizacao decide se a realização de uma sessão pode ser
// estornada: a sessão precisa estar realizada e o pacote não pode estar
// cancelado. O estorno é a única porta de saída do status realizada.
func AutorizarEstornoRealizacao(pacote *entity.PacoteTratamento, sessao *entity.AgendamentoSessao) error {
	if sessao.StatusSessao != entity.SessaoRealizada {
		return domain.ErrTransicaoInvalida
	}
	if pacote.StatusPacote == entity.PacoteCancelado {
		return domain.ErrTransicaoInvalida
	}
	return nil
}

// AutorizarTransicaoPacote valida a máquina de estados do pacote:
// ativo -> concluido e ativo -> cancelado; ambos terminais.
func AutorizarTransicaoPacote(de, para string) error {
	if de == entity.PacoteAtivo && (para == entity.PacoteConcluido || para == entity.PacoteCancelado) {
		return nil
	}
	return domain.ErrTransicaoInvalida
}

// AutorizarEntrada aceita qualquer entrada com quantidade positiva.
func AutorizarEntrada(quantidade decimal.Decimal) error {
	if !quantidade.GreaterThan(decimal.Zero) {
		return domain.ErrEntradaInvalida
	}
	return nil
}

// AutorizarSaida rejeita uma saída cuja quantidade exceda o saldo atual do
// item no momento da avaliação.
func AutorizarSaida(saldo SaldoEstoque, quantidade decimal.Decimal) error {
	if !quantidade.GreaterThan(decimal.Zero) {
		return domain.ErrEntradaInvalida
	}
	if quantidade.GreaterThan(saldo.QuantidadeAtual) {
		return domain.ErrEstoqueInsuficiente
	}
	return nil
}
