package sessoes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/seu-usuario/clinica-ledger/internal/domain"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/ledger"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

// UseCase é o rastreador de franquia de sessões: cria pacotes, agenda e
// realiza sessões e projeta saldos. Toda mutação roda dentro do TxRunner
// com lock na linha do pacote; duas realizações concorrentes sobre o mesmo
// pacote nunca enxergam o mesmo saldo.
type UseCase struct {
	txRunner   TxRunner
	pacoteRepo repository.PacoteTratamentoRepository
	sessaoRepo repository.AgendamentoSessaoRepository
}

// NewUseCase constrói o caso de uso. pacoteRepo e sessaoRepo são os
// repositórios atados ao pool, usados nos caminhos de leitura.
func NewUseCase(txRunner TxRunner, pacoteRepo repository.PacoteTratamentoRepository, sessaoRepo repository.AgendamentoSessaoRepository) *UseCase {
	return &UseCase{txRunner: txRunner, pacoteRepo: pacoteRepo, sessaoRepo: sessaoRepo}
}

// CriarPacoteInput entrada para CriarPacote.
type CriarPacoteInput struct {
	PacienteID               string
	TipoTratamentoID         string
	Descricao                string
	DataInicioTratamento     time.Time
	NumeroSessoesContratadas int
	Observacoes              string
}

// AgendarSessaoInput entrada para AgendarSessao.
type AgendarSessaoInput struct {
	PacienteID         string
	PacoteTratamentoID string
	DataAgendamento    time.Time
	HorarioInicio      string
	HorarioFim         string
	LocalAtendimentoID string
	Observacoes        string
}

// PacoteComSaldo pacote anotado com o saldo projetado.
type PacoteComSaldo struct {
	Pacote *entity.PacoteTratamento
	Saldo  ledger.SaldoPacote
}

// CriarPacote cria a concessão. Rejeita com ErrEntradaInvalida antes de
// qualquer escrita se o número de sessões contratadas não for positivo.
func (uc *UseCase) CriarPacote(ctx context.Context, input CriarPacoteInput) (*entity.PacoteTratamento, error) {
	if input.NumeroSessoesContratadas <= 0 {
		return nil, domain.ErrEntradaInvalida
	}
	if input.PacienteID == "" || input.TipoTratamentoID == "" || input.Descricao == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	pacote := &entity.PacoteTratamento{
		ID:                       uuid.New().String(),
		PacienteID:               input.PacienteID,
		TipoTratamentoID:         input.TipoTratamentoID,
		Descricao:                input.Descricao,
		DataInicioTratamento:     input.DataInicioTratamento,
		NumeroSessoesContratadas: input.NumeroSessoesContratadas,
		StatusPacote:             entity.PacoteAtivo,
		Observacoes:              input.Observacoes,
		CriadoEm:                 now,
		AtualizadoEm:             now,
	}
	if err := uc.pacoteRepo.Create(pacote); err != nil {
		return nil, err
	}
	return pacote, nil
}

// AgendarSessao cria um agendamento com status agendada. Agendar não consome
// a franquia; o guard só exige que o pacote esteja ativo e que o paciente
// seja o mesmo do pacote.
func (uc *UseCase) AgendarSessao(ctx context.Context, input AgendarSessaoInput) (*entity.AgendamentoSessao, error) {
	if input.PacoteTratamentoID == "" || input.PacienteID == "" || input.LocalAtendimentoID == "" || input.HorarioInicio == "" {
		return nil, domain.ErrEntradaInvalida
	}
	var criada *entity.AgendamentoSessao
	err := uc.txRunner.RunSessoes(ctx, func(
		pacotes repository.PacoteTratamentoRepository,
		sessoes repository.AgendamentoSessaoRepository,
	) error {
		pacote, err := pacotes.GetForUpdate(input.PacoteTratamentoID)
		if err != nil {
			return err
		}
		if pacote == nil {
			return domain.ErrNaoEncontrado
		}
		if pacote.PacienteID != input.PacienteID {
			return domain.ErrEntradaInvalida
		}
		if err := ledger.AutorizarAgendamento(pacote); err != nil {
			return err
		}
		// Número da sessão: posição na série de agendamentos vivos do pacote.
		vivas, err := sessoes.CountByStatus(pacote.ID, entity.SessaoAgendada, entity.SessaoRealizada)
		if err != nil {
			return err
		}
		now := time.Now()
		criada = &entity.AgendamentoSessao{
			ID:                 uuid.New().String(),
			PacoteTratamentoID: pacote.ID,
			PacienteID:         input.PacienteID,
			DataAgendamento:    input.DataAgendamento,
			HorarioInicio:      input.HorarioInicio,
			HorarioFim:         input.HorarioFim,
			LocalAtendimentoID: input.LocalAtendimentoID,
			StatusSessao:       entity.SessaoAgendada,
			NumeroSessao:       vivas + 1,
			Observacoes:        input.Observacoes,
			CriadoEm:           now,
			AtualizadoEm:       now,
		}
		return sessoes.Create(criada)
	})
	if err != nil {
		return nil, err
	}
	return criada, nil
}

// MarcarRealizada marca a sessão como realizada e devolve o saldo atualizado.
// O guard avalia o saldo projetado sob o lock do pacote: entre N chamadas
// concorrentes com uma sessão restante, exatamente uma passa. Quando a última
// sessão é realizada o pacote transita automaticamente para concluído.
func (uc *UseCase) MarcarRealizada(ctx context.Context, sessaoID string) (ledger.SaldoPacote, string, error) {
	var saldo ledger.SaldoPacote
	var statusPacote string
	err := uc.txRunner.RunSessoes(ctx, func(
		pacotes repository.PacoteTratamentoRepository,
		sessoes repository.AgendamentoSessaoRepository,
	) error {
		sessao, err := sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		pacote, err := pacotes.GetForUpdate(sessao.PacoteTratamentoID)
		if err != nil {
			return err
		}
		if pacote == nil {
			return domain.ErrNaoEncontrado
		}
		// O snapshot pré-lock só localiza o pacote; o guard avalia o status
		// relido sob o lock, depois de transações concorrentes commitarem.
		sessao, err = sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		if err := ledger.AutorizarTransicaoSessao(sessao.StatusSessao, entity.SessaoRealizada); err != nil {
			return err
		}
		realizadas, err := sessoes.CountByStatus(pacote.ID, entity.SessaoRealizada)
		if err != nil {
			return err
		}
		atual := ledger.SaldoDePacote(pacote.NumeroSessoesContratadas, realizadas)
		if err := ledger.AutorizarRealizacao(pacote, atual); err != nil {
			return err
		}
		if err := sessoes.UpdateStatus(sessao.ID, entity.SessaoRealizada); err != nil {
			return err
		}
		saldo = ledger.SaldoDePacote(pacote.NumeroSessoesContratadas, realizadas+1)
		statusPacote = pacote.StatusPacote
		if saldo.SessoesRestantes == 0 {
			if err := pacotes.UpdateStatus(pacote.ID, entity.PacoteConcluido); err != nil {
				return err
			}
			statusPacote = entity.PacoteConcluido
		}
		return nil
	})
	if err != nil {
		return ledger.SaldoPacote{}, "", err
	}
	return saldo, statusPacote, nil
}

// Cancelar cancela uma sessão não realizada. Cancelar uma realizada é
// rejeitado; para isso existe EstornarRealizacao.
func (uc *UseCase) Cancelar(ctx context.Context, sessaoID string) error {
	return uc.mudarStatus(ctx, sessaoID, entity.SessaoCancelada)
}

// Remarcar marca a sessão original como remarcada e cria uma nova com o novo
// horário, preservando o número da sessão. O histórico nunca é editado no
// lugar; remarcar uma sessão realizada é rejeitado com ErrTransicaoInvalida.
func (uc *UseCase) Remarcar(ctx context.Context, sessaoID string, novaData time.Time, horarioInicio, horarioFim string) (*entity.AgendamentoSessao, error) {
	if horarioInicio == "" {
		return nil, domain.ErrEntradaInvalida
	}
	var nova *entity.AgendamentoSessao
	err := uc.txRunner.RunSessoes(ctx, func(
		pacotes repository.PacoteTratamentoRepository,
		sessoes repository.AgendamentoSessaoRepository,
	) error {
		sessao, err := sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		pacote, err := pacotes.GetForUpdate(sessao.PacoteTratamentoID)
		if err != nil {
			return err
		}
		if pacote == nil {
			return domain.ErrNaoEncontrado
		}
		// Releitura sob o lock, como em MarcarRealizada.
		sessao, err = sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		if err := ledger.AutorizarTransicaoSessao(sessao.StatusSessao, entity.SessaoRemarcada); err != nil {
			return err
		}
		if err := sessoes.UpdateStatus(sessao.ID, entity.SessaoRemarcada); err != nil {
			return err
		}
		now := time.Now()
		nova = &entity.AgendamentoSessao{
			ID:                 uuid.New().String(),
			PacoteTratamentoID: sessao.PacoteTratamentoID,
			PacienteID:         sessao.PacienteID,
			DataAgendamento:    novaData,
			HorarioInicio:      horarioInicio,
			HorarioFim:         horarioFim,
			LocalAtendimentoID: sessao.LocalAtendimentoID,
			StatusSessao:       entity.SessaoAgendada,
			NumeroSessao:       sessao.NumeroSessao,
			Observacoes:        sessao.Observacoes,
			CriadoEm:           now,
			AtualizadoEm:       now,
		}
		return sessoes.Create(nova)
	})
	if err != nil {
		return nil, err
	}
	return nova, nil
}

// EstornarRealizacao é a ação compensatória explícita: devolve a sessão
// realizada para agendada, restaurando exatamente uma sessão restante no
// saldo. Um pacote concluído automaticamente reabre como ativo.
func (uc *UseCase) EstornarRealizacao(ctx context.Context, sessaoID string) (ledger.SaldoPacote, string, error) {
	var saldo ledger.SaldoPacote
	var statusPacote string
	err := uc.txRunner.RunSessoes(ctx, func(
		pacotes repository.PacoteTratamentoRepository,
		sessoes repository.AgendamentoSessaoRepository,
	) error {
		sessao, err := sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		pacote, err := pacotes.GetForUpdate(sessao.PacoteTratamentoID)
		if err != nil {
			return err
		}
		if pacote == nil {
			return domain.ErrNaoEncontrado
		}
		// Releitura sob o lock, como em MarcarRealizada.
		sessao, err = sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		if err := ledger.AutorizarEstornoRealizacao(pacote, sessao); err != nil {
			return err
		}
		if err := sessoes.UpdateStatus(sessao.ID, entity.SessaoAgendada); err != nil {
			return err
		}
		realizadas, err := sessoes.CountByStatus(pacote.ID, entity.SessaoRealizada)
		if err != nil {
			return err
		}
		saldo = ledger.SaldoDePacote(pacote.NumeroSessoesContratadas, realizadas-1)
		statusPacote = pacote.StatusPacote
		if pacote.StatusPacote == entity.PacoteConcluido && saldo.SessoesRestantes > 0 {
			if err := pacotes.UpdateStatus(pacote.ID, entity.PacoteAtivo); err != nil {
				return err
			}
			statusPacote = entity.PacoteAtivo
		}
		return nil
	})
	if err != nil {
		return ledger.SaldoPacote{}, "", err
	}
	return saldo, statusPacote, nil
}

// ConcluirPacote transição administrativa ativo -> concluido.
func (uc *UseCase) ConcluirPacote(ctx context.Context, pacoteID string) error {
	return uc.mudarStatusPacote(ctx, pacoteID, entity.PacoteConcluido)
}

// CancelarPacote transição administrativa ativo -> cancelado.
func (uc *UseCase) CancelarPacote(ctx context.Context, pacoteID string) error {
	return uc.mudarStatusPacote(ctx, pacoteID, entity.PacoteCancelado)
}

// ObterPacote devolve o pacote com o saldo projetado.
func (uc *UseCase) ObterPacote(ctx context.Context, pacoteID string) (*PacoteComSaldo, error) {
	pacote, err := uc.pacoteRepo.GetByID(pacoteID)
	if err != nil {
		return nil, err
	}
	if pacote == nil {
		return nil, domain.ErrNaoEncontrado
	}
	saldo, err := uc.projetar(pacote)
	if err != nil {
		return nil, err
	}
	return &PacoteComSaldo{Pacote: pacote, Saldo: saldo}, nil
}

// ListarPacotes lista todos os pacotes anotados com saldo.
func (uc *UseCase) ListarPacotes(ctx context.Context) ([]PacoteComSaldo, error) {
	pacotes, err := uc.pacoteRepo.List()
	if err != nil {
		return nil, err
	}
	return uc.anotar(pacotes)
}

// ListarPacotesPorPaciente lista os pacotes de um paciente, cada um anotado
// com o saldo projetado.
func (uc *UseCase) ListarPacotesPorPaciente(ctx context.Context, pacienteID string) ([]PacoteComSaldo, error) {
	pacotes, err := uc.pacoteRepo.ListByPaciente(pacienteID)
	if err != nil {
		return nil, err
	}
	return uc.anotar(pacotes)
}

// ListarPacotesPendentes lista pacotes ativos com sessões restantes, em ordem
// de criação (mais antigo primeiro), cada um anotado com o saldo projetado.
func (uc *UseCase) ListarPacotesPendentes(ctx context.Context) ([]PacoteComSaldo, error) {
	ativos, err := uc.pacoteRepo.ListAtivos()
	if err != nil {
		return nil, err
	}
	anotados, err := uc.anotar(ativos)
	if err != nil {
		return nil, err
	}
	pendentes := anotados[:0]
	for _, p := range anotados {
		if p.Saldo.SessoesRestantes > 0 {
			pendentes = append(pendentes, p)
		}
	}
	return pendentes, nil
}

// ListarSessoes lista todos os agendamentos de sessão.
func (uc *UseCase) ListarSessoes(ctx context.Context) ([]*entity.AgendamentoSessao, error) {
	return uc.sessaoRepo.List()
}

// ListarSessoesPorPacote lista o histórico de um pacote em ordem de criação.
func (uc *UseCase) ListarSessoesPorPacote(ctx context.Context, pacoteID string) ([]*entity.AgendamentoSessao, error) {
	pacote, err := uc.pacoteRepo.GetByID(pacoteID)
	if err != nil {
		return nil, err
	}
	if pacote == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return uc.sessaoRepo.ListByPacote(pacoteID)
}

func (uc *UseCase) mudarStatus(ctx context.Context, sessaoID, novoStatus string) error {
	return uc.txRunner.RunSessoes(ctx, func(
		pacotes repository.PacoteTratamentoRepository,
		sessoes repository.AgendamentoSessaoRepository,
	) error {
		sessao, err := sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		if _, err := pacotes.GetForUpdate(sessao.PacoteTratamentoID); err != nil {
			return err
		}
		// Releitura sob o lock, como em MarcarRealizada.
		sessao, err = sessoes.GetByID(sessaoID)
		if err != nil {
			return err
		}
		if sessao == nil {
			return domain.ErrNaoEncontrado
		}
		if err := ledger.AutorizarTransicaoSessao(sessao.StatusSessao, novoStatus); err != nil {
			return err
		}
		return sessoes.UpdateStatus(sessao.ID, novoStatus)
	})
}

func (uc *UseCase) mudarStatusPacote(ctx context.Context, pacoteID, novoStatus string) error {
	return uc.txRunner.RunSessoes(ctx, func(
		pacotes repository.PacoteTratamentoRepository,
		sessoes repository.AgendamentoSessaoRepository,
	) error {
		pacote, err := pacotes.GetForUpdate(pacoteID)
		if err != nil {
			return err
		}
		if pacote == nil {
			return domain.ErrNaoEncontrado
		}
		if err := ledger.AutorizarTransicaoPacote(pacote.StatusPacote, novoStatus); err != nil {
			return err
		}
		return pacotes.UpdateStatus(pacote.ID, novoStatus)
	})
}

func (uc *UseCase) projetar(pacote *entity.PacoteTratamento) (ledger.SaldoPacote, error) {
	realizadas, err := uc.sessaoRepo.CountByStatus(pacote.ID, entity.SessaoRealizada)
	if err != nil {
		return ledger.SaldoPacote{}, err
	}
	return ledger.SaldoDePacote(pacote.NumeroSessoesContratadas, realizadas), nil
}

func (uc *UseCase) anotar(pacotes []*entity.PacoteTratamento) ([]PacoteComSaldo, error) {
	anotados := make([]PacoteComSaldo, 0, len(pacotes))
	for _, p := range pacotes {
		saldo, err := uc.projetar(p)
		if err != nil {
			return nil, err
		}
		anotados = append(anotados, PacoteComSaldo{Pacote: p, Saldo: saldo})
	}
	return anotados, nil
}
