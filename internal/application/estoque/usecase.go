package estoque

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/seu-usuario/clinica-ledger/internal/domain"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
	"github.com/seu-usuario/clinica-ledger/internal/domain/ledger"
	"github.com/seu-usuario/clinica-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase é o rastreador de estoque: registra documentos de entrada e saída
// como movimentos append-only e projeta o saldo por item. Documentos são
// atômicos: ou todas as linhas entram, ou nenhuma.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovimentoEstoqueRepository
	entRepo  repository.EntradaEstoqueRepository
	saiRepo  repository.SaidaEstoqueRepository
}

// NewUseCase constrói o caso de uso. Os repositórios são os atados ao pool,
// usados na validação prévia e nos caminhos de leitura.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovimentoEstoqueRepository,
	entRepo repository.EntradaEstoqueRepository,
	saiRepo repository.SaidaEstoqueRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo, entRepo: entRepo, saiRepo: saiRepo}
}

// ItemMovimentoInput linha de documento para entrada ou saída.
type ItemMovimentoInput struct {
	ItemID        string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
}

// RegistrarEntradaInput entrada para RegistrarEntrada.
type RegistrarEntradaInput struct {
	FornecedorID string
	DataEntrada  time.Time
	Observacoes  string
	Itens        []ItemMovimentoInput
}

// RegistrarSaidaInput entrada para RegistrarSaida.
type RegistrarSaidaInput struct {
	AgendamentoID string
	DataSaida     time.Time
	Observacoes   string
	Itens         []ItemMovimentoInput
}

// ItemComSaldo item anotado com o saldo projetado.
type ItemComSaldo struct {
	Item  *entity.Item
	Saldo ledger.SaldoEstoque
}

// CriarItem registra um novo item de estoque (a concessão sem capacidade fixa).
func (uc *UseCase) CriarItem(ctx context.Context, nome, descricao, unidade string) (*entity.Item, error) {
	if nome == "" {
		return nil, domain.ErrEntradaInvalida
	}
	item := &entity.Item{
		ID:        uuid.New().String(),
		Nome:      nome,
		Descricao: descricao,
		Unidade:   unidade,
		CriadoEm:  time.Now(),
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListarItens lista os itens cadastrados.
func (uc *UseCase) ListarItens(ctx context.Context) ([]*entity.Item, error) {
	return uc.itemRepo.List()
}

// RegistrarEntrada grava o documento de entrada e um movimento positivo por
// linha, tudo na mesma transação. Entradas são aceitas incondicionalmente,
// desde que cada quantidade seja positiva.
func (uc *UseCase) RegistrarEntrada(ctx context.Context, input RegistrarEntradaInput) (*entity.EntradaEstoque, error) {
	if input.FornecedorID == "" || len(input.Itens) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	itens, err := uc.validarItens(input.Itens, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &entity.EntradaEstoque{
		ID:           uuid.New().String(),
		FornecedorID: input.FornecedorID,
		DataEntrada:  input.DataEntrada,
		Observacoes:  input.Observacoes,
		CriadoEm:     now,
	}
	err = uc.txRunner.RunEstoque(ctx, func(
		movimentos repository.MovimentoEstoqueRepository,
		estoques repository.EstoqueRepository,
		entradas repository.EntradaEstoqueRepository,
		saidas repository.SaidaEstoqueRepository,
	) error {
		// O callback pode ser reexecutado pelo retry do TxRunner; as
		// linhas da tentativa desfeita não podem sobrar no documento.
		doc.Itens = nil
		if err := entradas.Create(doc); err != nil {
			return err
		}
		for _, linha := range itens {
			mov := &entity.MovimentoEstoque{
				ID:            uuid.New().String(),
				ItemID:        linha.ItemID,
				Tipo:          entity.MovimentoEntrada,
				Quantidade:    linha.Quantidade,
				ValorUnitario: linha.ValorUnitario,
				DocumentoID:   doc.ID,
				Data:          input.DataEntrada,
				CriadoEm:      now,
			}
			if err := uc.aplicarMovimento(movimentos, estoques, mov, now); err != nil {
				return err
			}
			doc.Itens = append(doc.Itens, entity.ItemEntradaEstoque{
				ItemID:        linha.ItemID,
				Quantidade:    linha.Quantidade,
				ValorUnitario: linha.ValorUnitario,
				MovimentoID:   mov.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// RegistrarSaida grava o documento de saída, passando cada linha pelo guard
// sob o lock da linha de estoque do item. Uma linha sem saldo rejeita o
// documento inteiro com ErrEstoqueInsuficiente e nenhum movimento persiste.
func (uc *UseCase) RegistrarSaida(ctx context.Context, input RegistrarSaidaInput) (*entity.SaidaEstoque, error) {
	if input.AgendamentoID == "" || len(input.Itens) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	itens, err := uc.validarItens(input.Itens, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &entity.SaidaEstoque{
		ID:            uuid.New().String(),
		AgendamentoID: input.AgendamentoID,
		DataSaida:     input.DataSaida,
		Observacoes:   input.Observacoes,
		CriadoEm:      now,
	}
	err = uc.txRunner.RunEstoque(ctx, func(
		movimentos repository.MovimentoEstoqueRepository,
		estoques repository.EstoqueRepository,
		entradas repository.EntradaEstoqueRepository,
		saidas repository.SaidaEstoqueRepository,
	) error {
		// Mesmo cuidado de RegistrarEntrada com o retry do TxRunner.
		doc.Itens = nil
		if err := saidas.Create(doc); err != nil {
			return err
		}
		for _, linha := range itens {
			mov := &entity.MovimentoEstoque{
				ID:          uuid.New().String(),
				ItemID:      linha.ItemID,
				Tipo:        entity.MovimentoSaida,
				Quantidade:  linha.Quantidade.Neg(),
				DocumentoID: doc.ID,
				Data:        input.DataSaida,
				CriadoEm:    now,
			}
			if err := uc.aplicarMovimento(movimentos, estoques, mov, now); err != nil {
				return err
			}
			doc.Itens = append(doc.Itens, entity.ItemSaidaEstoque{
				ItemID:      linha.ItemID,
				Quantidade:  linha.Quantidade,
				MovimentoID: mov.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// EstornarEntrada aplica o movimento compensatório de uma entrada: um
// estorno negativo por linha do documento. O estoque já consumido bloqueia
// o estorno (o guard de saída roda linha a linha). Um documento só pode ser
// estornado uma vez; o histórico nunca é apagado.
func (uc *UseCase) EstornarEntrada(ctx context.Context, entradaID string) error {
	return uc.txRunner.RunEstoque(ctx, func(
		movimentos repository.MovimentoEstoqueRepository,
		estoques repository.EstoqueRepository,
		entradas repository.EntradaEstoqueRepository,
		saidas repository.SaidaEstoqueRepository,
	) error {
		doc, err := entradas.GetByID(entradaID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNaoEncontrado
		}
		if doc.Estornada {
			return domain.ErrDocumentoJaEstornado
		}
		origem, err := movimentos.ListByDocumento(doc.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, m := range ordenarPorItem(origem) {
			estorno := &entity.MovimentoEstoque{
				ID:            uuid.New().String(),
				ItemID:        m.ItemID,
				Tipo:          entity.MovimentoEstornoEntrada,
				Quantidade:    m.Quantidade.Neg(),
				ValorUnitario: m.ValorUnitario,
				DocumentoID:   doc.ID,
				EstornoDe:     m.ID,
				Data:          now,
				CriadoEm:      now,
			}
			if err := uc.aplicarMovimento(movimentos, estoques, estorno, now); err != nil {
				return err
			}
		}
		return entradas.MarcarEstornada(doc.ID)
	})
}

// EstornarSaida aplica o movimento compensatório de uma saída: um estorno
// positivo por linha, devolvendo as quantidades ao estoque.
func (uc *UseCase) EstornarSaida(ctx context.Context, saidaID string) error {
	return uc.txRunner.RunEstoque(ctx, func(
		movimentos repository.MovimentoEstoqueRepository,
		estoques repository.EstoqueRepository,
		entradas repository.EntradaEstoqueRepository,
		saidas repository.SaidaEstoqueRepository,
	) error {
		doc, err := saidas.GetByID(saidaID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNaoEncontrado
		}
		if doc.Estornada {
			return domain.ErrDocumentoJaEstornado
		}
		origem, err := movimentos.ListByDocumento(doc.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, m := range ordenarPorItem(origem) {
			estorno := &entity.MovimentoEstoque{
				ID:          uuid.New().String(),
				ItemID:      m.ItemID,
				Tipo:        entity.MovimentoEstornoSaida,
				Quantidade:  m.Quantidade.Neg(),
				DocumentoID: doc.ID,
				EstornoDe:   m.ID,
				Data:        now,
				CriadoEm:    now,
			}
			if err := uc.aplicarMovimento(movimentos, estoques, estorno, now); err != nil {
				return err
			}
		}
		return saidas.MarcarEstornada(doc.ID)
	})
}

// EstoqueAtual projeta o saldo de todos os itens cadastrados a partir dos
// totais agregados do razão. Itens sem movimento aparecem zerados.
func (uc *UseCase) EstoqueAtual(ctx context.Context) ([]ItemComSaldo, error) {
	itens, err := uc.itemRepo.List()
	if err != nil {
		return nil, err
	}
	totais, err := uc.movRepo.Totais()
	if err != nil {
		return nil, err
	}
	porItem := make(map[string]repository.TotaisItem, len(totais))
	for _, t := range totais {
		porItem[t.ItemID] = t
	}
	resultado := make([]ItemComSaldo, 0, len(itens))
	for _, item := range itens {
		t := porItem[item.ID]
		resultado = append(resultado, ItemComSaldo{
			Item:  item,
			Saldo: ledger.SaldoDeTotais(item.ID, t.TotalEntrada, t.TotalSaida),
		})
	}
	return resultado, nil
}

// EstoqueAtualItem projeta o saldo de um único item.
func (uc *UseCase) EstoqueAtualItem(ctx context.Context, itemID string) (*ItemComSaldo, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNaoEncontrado
	}
	totais, err := uc.movRepo.TotaisPorItem(itemID)
	if err != nil {
		return nil, err
	}
	return &ItemComSaldo{
		Item:  item,
		Saldo: ledger.SaldoDeTotais(item.ID, totais.TotalEntrada, totais.TotalSaida),
	}, nil
}

// ListarEntradas lista os documentos de entrada com suas linhas.
func (uc *UseCase) ListarEntradas(ctx context.Context) ([]*entity.EntradaEstoque, error) {
	return uc.entRepo.List()
}

// ListarSaidas lista os documentos de saída com suas linhas.
func (uc *UseCase) ListarSaidas(ctx context.Context) ([]*entity.SaidaEstoque, error) {
	return uc.saiRepo.List()
}

// aplicarMovimento executa o ciclo guard-depois-append de uma linha:
// bloqueia a linha de estoque do item, projeta o saldo do snapshot sob o
// lock, autoriza e então grava o movimento e o saldo materializado.
func (uc *UseCase) aplicarMovimento(
	movimentos repository.MovimentoEstoqueRepository,
	estoques repository.EstoqueRepository,
	mov *entity.MovimentoEstoque,
	now time.Time,
) error {
	est, err := estoques.GetForUpdate(mov.ItemID)
	if err != nil {
		return err
	}
	totais, err := movimentos.TotaisPorItem(mov.ItemID)
	if err != nil {
		return err
	}
	saldo := ledger.SaldoDeTotais(mov.ItemID, totais.TotalEntrada, totais.TotalSaida)
	if mov.Quantidade.IsNegative() {
		if err := ledger.AutorizarSaida(saldo, mov.Quantidade.Neg()); err != nil {
			return err
		}
	} else if err := ledger.AutorizarEntrada(mov.Quantidade); err != nil {
		return err
	}
	if err := movimentos.Create(mov); err != nil {
		return err
	}
	// Primeiro movimento do item: ainda não existe linha materializada.
	if est == nil {
		est = &entity.Estoque{ItemID: mov.ItemID}
	}
	est.Quantidade = saldo.QuantidadeAtual.Add(mov.Quantidade)
	est.AtualizadoEm = now
	return estoques.Upsert(est)
}

// validarItens valida as linhas antes de abrir a transação e as devolve em
// ordem crescente de item (ordem de lock estável entre transações).
func (uc *UseCase) validarItens(itens []ItemMovimentoInput, comValor bool) ([]ItemMovimentoInput, error) {
	validados := make([]ItemMovimentoInput, 0, len(itens))
	for _, linha := range itens {
		if linha.ItemID == "" {
			return nil, domain.ErrEntradaInvalida
		}
		if err := ledger.AutorizarEntrada(linha.Quantidade); err != nil {
			return nil, err
		}
		if comValor && linha.ValorUnitario.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		item, err := uc.itemRepo.GetByID(linha.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNaoEncontrado
		}
		validados = append(validados, linha)
	}
	sort.Slice(validados, func(i, j int) bool { return validados[i].ItemID < validados[j].ItemID })
	return validados, nil
}

func ordenarPorItem(movimentos []*entity.MovimentoEstoque) []*entity.MovimentoEstoque {
	ordenados := make([]*entity.MovimentoEstoque, len(movimentos))
	copy(ordenados, movimentos)
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].ItemID < ordenados[j].ItemID })
	return ordenados
}
