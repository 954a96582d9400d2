package estoque_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore guarda itens, movimentos e documentos em memória. O mutex do
// memTxRunner serializa as transações como o lock de linha do Postgres; o
// snapshot tirado antes de cada transação faz o papel do rollback.
type memStore struct {
	mu         sync.Mutex
	itens      map[string]*entity.Item
	movimentos []*entity.MovimentoEstoque
	estoques   map[string]*entity.Estoque
	entradas   map[string]*entity.EntradaEstoque
	saidas     map[string]*entity.SaidaEstoque
	seq        int64
}

func newMemStore() *memStore {
	return &memStore{
		itens:    make(map[string]*entity.Item),
		estoques: make(map[string]*entity.Estoque),
		entradas: make(map[string]*entity.EntradaEstoque),
		saidas:   make(map[string]*entity.SaidaEstoque),
	}
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	clone := *item
	r.s.itens[item.ID] = &clone
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	item, ok := r.s.itens[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (r *memItemRepo) List() ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.s.itens))
	for _, item := range r.s.itens {
		clone := *item
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memMovimentoRepo struct{ s *memStore }

func (r *memMovimentoRepo) Create(mov *entity.MovimentoEstoque) error {
	r.s.seq++
	mov.Seq = r.s.seq
	clone := *mov
	r.s.movimentos = append(r.s.movimentos, &clone)
	return nil
}

func (r *memMovimentoRepo) ListByDocumento(documentoID string) ([]*entity.MovimentoEstoque, error) {
	var out []*entity.MovimentoEstoque
	for _, m := range r.s.movimentos {
		if m.DocumentoID == documentoID && m.EstornoDe == "" {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memMovimentoRepo) TotaisPorItem(itemID string) (*repository.TotaisItem, error) {
	t := repository.TotaisItem{ItemID: itemID, TotalEntrada: decimal.Zero, TotalSaida: decimal.Zero}
	for _, m := range r.s.movimentos {
		if m.ItemID != itemID {
			continue
		}
		if m.Quantidade.IsNegative() {
			t.TotalSaida = t.TotalSaida.Add(m.Quantidade.Neg())
		} else {
			t.TotalEntrada = t.TotalEntrada.Add(m.Quantidade)
		}
	}
	return &t, nil
}

func (r *memMovimentoRepo) Totais() ([]repository.TotaisItem, error) {
	vistos := make(map[string]bool)
	var out []repository.TotaisItem
	for _, m := range r.s.movimentos {
		if vistos[m.ItemID] {
			continue
		}
		vistos[m.ItemID] = true
		t, _ := r.TotaisPorItem(m.ItemID)
		out = append(out, *t)
	}
	return out, nil
}

type memEstoqueRepo struct{ s *memStore }

func (r *memEstoqueRepo) GetForUpdate(itemID string) (*entity.Estoque, error) {
	est, ok := r.s.estoques[itemID]
	if !ok {
		return nil, nil
	}
	clone := *est
	return &clone, nil
}

func (r *memEstoqueRepo) Upsert(est *entity.Estoque) error {
	clone := *est
	r.s.estoques[est.ItemID] = &clone
	return nil
}

type memEntradaRepo struct{ s *memStore }

func (r *memEntradaRepo) Create(doc *entity.EntradaEstoque) error {
	clone := *doc
	r.s.entradas[doc.ID] = &clone
	return nil
}

func (r *memEntradaRepo) GetByID(id string) (*entity.EntradaEstoque, error) {
	doc, ok := r.s.entradas[id]
	if !ok {
		return nil, nil
	}
	clone := *doc
	return &clone, nil
}

func (r *memEntradaRepo) List() ([]*entity.EntradaEstoque, error) {
	out := make([]*entity.EntradaEstoque, 0, len(r.s.entradas))
	for _, doc := range r.s.entradas {
		clone := *doc
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CriadoEm.Before(out[j].CriadoEm) })
	return out, nil
}

func (r *memEntradaRepo) MarcarEstornada(id string) error {
	if doc, ok := r.s.entradas[id]; ok {
		doc.Estornada = true
	}
	return nil
}

type memSaidaRepo struct{ s *memStore }

func (r *memSaidaRepo) Create(doc *entity.SaidaEstoque) error {
	clone := *doc
	r.s.saidas[doc.ID] = &clone
	return nil
}

func (r *memSaidaRepo) GetByID(id string) (*entity.SaidaEstoque, error) {
	doc, ok := r.s.saidas[id]
	if !ok {
		return nil, nil
	}
	clone := *doc
	return &clone, nil
}

func (r *memSaidaRepo) List() ([]*entity.SaidaEstoque, error) {
	out := make([]*entity.SaidaEstoque, 0, len(r.s.saidas))
	for _, doc := range r.s.saidas {
		clone := *doc
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CriadoEm.Before(out[j].CriadoEm) })
	return out, nil
}

func (r *memSaidaRepo) MarcarEstornada(id string) error {
	if doc, ok := r.s.saidas[id]; ok {
		doc.Estornada = true
	}
	return nil
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) RunEstoque(ctx context.Context, fn func(
	movimentos repository.MovimentoEstoqueRepository,
	estoques repository.EstoqueRepository,
	entradas repository.EntradaEstoqueRepository,
	saidas repository.SaidaEstoqueRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snapMov := append([]*entity.MovimentoEstoque(nil), t.s.movimentos...)
	snapEst := make(map[string]*entity.Estoque, len(t.s.estoques))
	for id, e := range t.s.estoques {
		clone := *e
		snapEst[id] = &clone
	}
	snapEnt := make(map[string]*entity.EntradaEstoque, len(t.s.entradas))
	for id, e := range t.s.entradas {
		clone := *e
		snapEnt[id] = &clone
	}
	snapSai := make(map[string]*entity.SaidaEstoque, len(t.s.saidas))
	for id, e := range t.s.saidas {
		clone := *e
		snapSai[id] = &clone
	}
	snapSeq := t.s.seq

	err := fn(&memMovimentoRepo{s: t.s}, &memEstoqueRepo{s: t.s}, &memEntradaRepo{s: t.s}, &memSaidaRepo{s: t.s})
	if err != nil {
		t.s.movimentos = snapMov
		t.s.estoques = snapEst
		t.s.entradas = snapEnt
		t.s.saidas = snapSai
		t.s.seq = snapSeq
		return err
	}
	return nil
}

// replayTxRunner executa o callback duas vezes, com rollback entre as
// tentativas, reproduzindo o retry do TxRunner real diante de uma falha de
// serialização na primeira tentativa.
type replayTxRunner struct{ s *memStore }

var errTentativaDescartada = errors.New("tentativa descartada")

func (t *replayTxRunner) RunEstoque(ctx context.Context, fn func(
	movimentos repository.MovimentoEstoqueRepository,
	estoques repository.EstoqueRepository,
	entradas repository.EntradaEstoqueRepository,
	saidas repository.SaidaEstoqueRepository,
) error) error {
	inner := &memTxRunner{s: t.s}
	err := inner.RunEstoque(ctx, func(
		movimentos repository.MovimentoEstoqueRepository,
		estoques repository.EstoqueRepository,
		entradas repository.EntradaEstoqueRepository,
		saidas repository.SaidaEstoqueRepository,
	) error {
		if err := fn(movimentos, estoques, entradas, saidas); err != nil {
			return err
		}
		return errTentativaDescartada
	})
	if err != nil && !errors.Is(err, errTentativaDescartada) {
		return err
	}
	return inner.RunEstoque(ctx, fn)
}
