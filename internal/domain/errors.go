package domain

import "errors"

// Erros de domínio (sem dependências externas).
// ErrSessoesEsgotadas, ErrEstoqueInsuficiente e ErrTransicaoInvalida são
// rejeições de regra de negócio: o estado do razão permanece intacto e o
// chamador pode corrigir a entrada. ErrConflitoConcorrencia é transitório
// e seguro de repetir.
var (
	ErrNaoEncontrado        = errors.New("recurso não encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrSessoesEsgotadas     = errors.New("todas as sessões contratadas já foram realizadas")
	ErrEstoqueInsuficiente  = errors.New("estoque insuficiente")
	ErrTransicaoInvalida    = errors.New("transição de status inválida")
	ErrConflitoConcorrencia = errors.New("conflito de concorrência, tente novamente")
	ErrNaoAutorizado        = errors.New("não autorizado")
	ErrDocumentoJaEstornado = errors.New("documento já estornado")
)
