package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/clinica-ledger/internal/application/dto"
	"github.com/seu-usuario/clinica-ledger/internal/application/estoque"
	"github.com/seu-usuario/clinica-ledger/internal/domain/entity"
)

// EstoqueHandler atende as rotas de itens, documentos e saldo de estoque (protegido).
type EstoqueHandler struct {
	uc *estoque.UseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(uc *estoque.UseCase) *EstoqueHandler {
	return &EstoqueHandler{uc: uc}
}

// CriarItem godoc
// @Summary      Cadastrar item de estoque
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarItemRequest  true  "Dados do item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/itens [post]
func (h *EstoqueHandler) CriarItem(c *fiber.Ctx) error {
	var in dto.CriarItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.CriarItem(c.Context(), in.Nome, in.Descricao, in.Unidade)
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// ListarItens godoc
// @Summary      Listar itens cadastrados
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/itens [get]
func (h *EstoqueHandler) ListarItens(c *fiber.Ctx) error {
	list, err := h.uc.ListarItens(c.Context())
	if err != nil {
		return erroHTTP(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toItemResponse(i))
	}
	return c.JSON(out)
}

// RegistrarEntrada godoc
// @Summary      Registrar documento de entrada de estoque
// @Description  Todas as linhas entram atomicamente na mesma transação.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntradaRequest  true  "Documento de entrada"
// @Success      201   {object}  dto.DocumentoEstoqueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/entradas-estoque [post]
func (h *EstoqueHandler) RegistrarEntrada(c *fiber.Ctx) error {
	var in dto.RegistrarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	data, err := time.Parse("2006-01-02", in.DataEntrada)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_entrada deve ser YYYY-MM-DD"})
	}
	input := estoque.RegistrarEntradaInput{
		FornecedorID: in.FornecedorID,
		DataEntrada:  data,
		Observacoes:  in.Observacoes,
	}
	for _, linha := range in.Itens {
		input.Itens = append(input.Itens, estoque.ItemMovimentoInput{
			ItemID:        linha.ItemID,
			Quantidade:    linha.Quantidade,
			ValorUnitario: linha.ValorUnitario,
		})
	}
	doc, err := h.uc.RegistrarEntrada(c.Context(), input)
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntradaResponse(doc))
}

// ListarEntradas godoc
// @Summary      Listar documentos de entrada
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DocumentoEstoqueResponse
// @Router       /api/entradas-estoque [get]
func (h *EstoqueHandler) ListarEntradas(c *fiber.Ctx) error {
	list, err := h.uc.ListarEntradas(c.Context())
	if err != nil {
		return erroHTTP(c, err)
	}
	out := make([]dto.DocumentoEstoqueResponse, 0, len(list))
	for _, doc := range list {
		out = append(out, toEntradaResponse(doc))
	}
	return c.JSON(out)
}

// EstornarEntrada godoc
// @Summary      Estornar documento de entrada
// @Description  Gera movimentos de compensação negativos. Rejeitado se o estoque
//               que a entrada trouxe já foi consumido, ou se já estornada.
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da entrada"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/entradas-estoque/{id}/estornar [post]
func (h *EstoqueHandler) EstornarEntrada(c *fiber.Ctx) error {
	if err := h.uc.EstornarEntrada(c.Context(), c.Params("id")); err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(fiber.Map{"message": "entrada estornada"})
}

// RegistrarSaida godoc
// @Summary      Registrar documento de saída de estoque
// @Description  Cada linha passa pelo guard sob lock; uma linha sem saldo rejeita
//               o documento inteiro, nada é persistido.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarSaidaRequest  true  "Documento de saída"
// @Success      201   {object}  dto.DocumentoEstoqueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/saidas-estoque [post]
func (h *EstoqueHandler) RegistrarSaida(c *fiber.Ctx) error {
	var in dto.RegistrarSaidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	data, err := time.Parse("2006-01-02", in.DataSaida)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_saida deve ser YYYY-MM-DD"})
	}
	input := estoque.RegistrarSaidaInput{
		AgendamentoID: in.AgendamentoID,
		DataSaida:     data,
		Observacoes:   in.Observacoes,
	}
	for _, linha := range in.Itens {
		input.Itens = append(input.Itens, estoque.ItemMovimentoInput{
			ItemID:     linha.ItemID,
			Quantidade: linha.Quantidade,
		})
	}
	doc, err := h.uc.RegistrarSaida(c.Context(), input)
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaidaResponse(doc))
}

// ListarSaidas godoc
// @Summary      Listar documentos de saída
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DocumentoEstoqueResponse
// @Router       /api/saidas-estoque [get]
func (h *EstoqueHandler) ListarSaidas(c *fiber.Ctx) error {
	list, err := h.uc.ListarSaidas(c.Context())
	if err != nil {
		return erroHTTP(c, err)
	}
	out := make([]dto.DocumentoEstoqueResponse, 0, len(list))
	for _, doc := range list {
		out = append(out, toSaidaResponse(doc))
	}
	return c.JSON(out)
}

// EstornarSaida godoc
// @Summary      Estornar documento de saída
// @Description  Gera movimentos de compensação positivos devolvendo o estoque.
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da saída"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/saidas-estoque/{id}/estornar [post]
func (h *EstoqueHandler) EstornarSaida(c *fiber.Ctx) error {
	if err := h.uc.EstornarSaida(c.Context(), c.Params("id")); err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(fiber.Map{"message": "saída estornada"})
}

// EstoqueAtual godoc
// @Summary      Saldo atual de todos os itens
// @Description  Itens sem movimento aparecem zerados.
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EstoqueAtualResponse
// @Router       /api/estoque [get]
func (h *EstoqueHandler) EstoqueAtual(c *fiber.Ctx) error {
	list, err := h.uc.EstoqueAtual(c.Context())
	if err != nil {
		return erroHTTP(c, err)
	}
	out := make([]dto.EstoqueAtualResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toEstoqueAtualResponse(i))
	}
	return c.JSON(out)
}

// EstoqueAtualItem godoc
// @Summary      Saldo atual de um item
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  string  true  "ID do item"
// @Success      200  {object}  dto.EstoqueAtualResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/{item_id} [get]
func (h *EstoqueHandler) EstoqueAtualItem(c *fiber.Ctx) error {
	item, err := h.uc.EstoqueAtualItem(c.Context(), c.Params("item_id"))
	if err != nil {
		return erroHTTP(c, err)
	}
	return c.JSON(toEstoqueAtualResponse(*item))
}

func toItemResponse(i *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:        i.ID,
		Nome:      i.Nome,
		Descricao: i.Descricao,
		Unidade:   i.Unidade,
	}
}

func toEntradaResponse(doc *entity.EntradaEstoque) dto.DocumentoEstoqueResponse {
	out := dto.DocumentoEstoqueResponse{
		ID:           doc.ID,
		FornecedorID: doc.FornecedorID,
		Data:         doc.DataEntrada.Format("2006-01-02"),
		Observacoes:  doc.Observacoes,
		Estornada:    doc.Estornada,
	}
	for _, linha := range doc.Itens {
		out.Itens = append(out.Itens, dto.ItemDocumentoResponse{
			ItemID:        linha.ItemID,
			Quantidade:    linha.Quantidade,
			ValorUnitario: linha.ValorUnitario,
		})
	}
	return out
}

func toSaidaResponse(doc *entity.SaidaEstoque) dto.DocumentoEstoqueResponse {
	out := dto.DocumentoEstoqueResponse{
		ID:            doc.ID,
		AgendamentoID: doc.AgendamentoID,
		Data:          doc.DataSaida.Format("2006-01-02"),
		Observacoes:   doc.Observacoes,
		Estornada:     doc.Estornada,
	}
	for _, linha := range doc.Itens {
		out.Itens = append(out.Itens, dto.ItemDocumentoResponse{
			ItemID:     linha.ItemID,
			Quantidade: linha.Quantidade,
		})
	}
	return out
}

func toEstoqueAtualResponse(i estoque.ItemComSaldo) dto.EstoqueAtualResponse {
	return dto.EstoqueAtualResponse{
		ItemID:          i.Item.ID,
		Nome:            i.Item.Nome,
		QuantidadeAtual: i.Saldo.QuantidadeAtual,
		TotalEntrada:    i.Saldo.TotalEntrada,
		TotalSaida:      i.Saldo.TotalSaida,
	}
}
