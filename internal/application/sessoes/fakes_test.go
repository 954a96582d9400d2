package sessoes_test

import (
	"context"
	"sync"
	"time"

	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
)

// memStore guarda pacotes e sessões em memória. O mutex do memTxRunner faz o
// papel do lock de linha do Postgres: uma transação por vez por store, que é
// exatamente a serialização que o motor exige por concessão.
type memStore struct {
	mu      sync.Mutex
	pacotes map[string]*entity.PacoteTratamento
	sessoes map[string]*entity.AgendamentoSessao
	seq     int64
	ordem   []string // ids de pacote em ordem de criação

	// aoBloquearPacote, quando definido, roda na aquisição do lock do
	// pacote. Os testes o usam para aplicar escritas de uma transação
	// concorrente que commitou enquanto o lock era aguardado.
	aoBloquearPacote func()
}

func newMemStore() *memStore {
	return &memStore{
		pacotes: make(map[string]*entity.PacoteTratamento),
		sessoes: make(map[string]*entity.AgendamentoSessao),
	}
}

type memPacoteRepo struct{ s *memStore }

func (r *memPacoteRepo) Create(p *entity.PacoteTratamento) error {
	clone := *p
	r.s.pacotes[p.ID] = &clone
	r.s.ordem = append(r.s.ordem, p.ID)
	return nil
}

func (r *memPacoteRepo) GetByID(id string) (*entity.PacoteTratamento, error) {
	p, ok := r.s.pacotes[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *memPacoteRepo) GetForUpdate(id string) (*entity.PacoteTratamento, error) {
	if r.s.aoBloquearPacote != nil {
		r.s.aoBloquearPacote()
	}
	return r.GetByID(id)
}

func (r *memPacoteRepo) List() ([]*entity.PacoteTratamento, error) {
	out := make([]*entity.PacoteTratamento, 0, len(r.s.ordem))
	for _, id := range r.s.ordem {
		clone := *r.s.pacotes[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memPacoteRepo) ListByPaciente(pacienteID string) ([]*entity.PacoteTratamento, error) {
	todos, _ := r.List()
	out := todos[:0]
	for _, p := range todos {
		if p.PacienteID == pacienteID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPacoteRepo) ListAtivos() ([]*entity.PacoteTratamento, error) {
	todos, _ := r.List()
	out := todos[:0]
	for _, p := range todos {
		if p.StatusPacote == entity.PacoteAtivo {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPacoteRepo) UpdateStatus(id, status string) error {
	p, ok := r.s.pacotes[id]
	if !ok {
		return nil
	}
	p.StatusPacote = status
	p.AtualizadoEm = time.Now()
	return nil
}

type memSessaoRepo struct{ s *memStore }

func (r *memSessaoRepo) Create(sessao *entity.AgendamentoSessao) error {
	r.s.seq++
	sessao.Seq = r.s.seq
	clone := *sessao
	r.s.sessoes[sessao.ID] = &clone
	return nil
}

func (r *memSessaoRepo) GetByID(id string) (*entity.AgendamentoSessao, error) {
	sessao, ok := r.s.sessoes[id]
	if !ok {
		return nil, nil
	}
	clone := *sessao
	return &clone, nil
}

func (r *memSessaoRepo) List() ([]*entity.AgendamentoSessao, error) {
	out := make([]*entity.AgendamentoSessao, 0, len(r.s.sessoes))
	for _, sessao := range r.s.sessoes {
		clone := *sessao
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memSessaoRepo) ListByPacote(pacoteID string) ([]*entity.AgendamentoSessao, error) {
	todos, _ := r.List()
	out := make([]*entity.AgendamentoSessao, 0, len(todos))
	for _, sessao := range todos {
		if sessao.PacoteTratamentoID == pacoteID {
			out = append(out, sessao)
		}
	}
	return out, nil
}

func (r *memSessaoRepo) CountByStatus(pacoteID string, status ...string) (int, error) {
	n := 0
	for _, sessao := range r.s.sessoes {
		if sessao.PacoteTratamentoID != pacoteID {
			continue
		}
		for _, st := range status {
			if sessao.StatusSessao == st {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *memSessaoRepo) UpdateStatus(id, status string) error {
	sessao, ok := r.s.sessoes[id]
	if !ok {
		return nil
	}
	sessao.StatusSessao = status
	sessao.AtualizadoEm = time.Now()
	return nil
}

type memTxRunner struct{ s *memStore }

// RunSessoes serializa as transações com o mutex do store e desfaz todas as
// escritas se fn falhar, imitando o commit/rollback do TxRunner real.
func (t *memTxRunner) RunSessoes(ctx context.Context, fn func(
	pacotes repository.PacoteTratamentoRepository,
	sessoes repository.AgendamentoSessaoRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snapPacotes := make(map[string]*entity.PacoteTratamento, len(t.s.pacotes))
	for id, p := range t.s.pacotes {
		clone := *p
		snapPacotes[id] = &clone
	}
	snapSessoes := make(map[string]*entity.AgendamentoSessao, len(t.s.sessoes))
	for id, sessao := range t.s.sessoes {
		clone := *sessao
		snapSessoes[id] = &clone
	}
	snapOrdem := append([]string(nil), t.s.ordem...)
	snapSeq := t.s.seq

	if err := fn(&memPacoteRepo{s: t.s}, &memSessaoRepo{s: t.s}); err != nil {
		t.s.pacotes = snapPacotes
		t.s.sessoes = snapSessoes
		t.s.ordem = snapOrdem
		t.s.seq = snapSeq
		return err
	}
	return nil
}
