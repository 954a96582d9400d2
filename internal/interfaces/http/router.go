package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/clinica-ledger/internal/application/estoque"
	"github.com/seu-usuario/clinica-ledger/internal/application/sessoes"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	SessoesUC *sessoes.UseCase
	EstoqueUC *estoque.UseCase
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Pacotes de tratamento (razão de sessões)
	pacotes := protected.Group("/pacotes-tratamento")
	pacoteHandler := NewPacoteHandler(deps.SessoesUC)
	pacotes.Post("/", pacoteHandler.Create)
	pacotes.Get("/", pacoteHandler.List)
	pacotes.Get("/pendentes", pacoteHandler.ListPendentes)
	pacotes.Get("/:id", pacoteHandler.GetByID)
	// Ações administrativas sobre o pacote: só admin
	pacotes.Post("/:id/concluir", RequirePerfil("admin"), pacoteHandler.Concluir)
	pacotes.Post("/:id/cancelar", RequirePerfil("admin"), pacoteHandler.Cancelar)

	// Agendamentos de sessão
	sessoesGroup := protected.Group("/agendamentos-sessao")
	sessaoHandler := NewSessaoHandler(deps.SessoesUC)
	sessoesGroup.Post("/", sessaoHandler.Create)
	sessoesGroup.Get("/", sessaoHandler.List)
	sessoesGroup.Get("/pacote/:id", sessaoHandler.ListByPacote)
	sessoesGroup.Post("/:id/marcar-realizada", sessaoHandler.MarcarRealizada)
	sessoesGroup.Post("/:id/cancelar", sessaoHandler.Cancelar)
	sessoesGroup.Post("/:id/remarcar", sessaoHandler.Remarcar)
	// Estorno é ação explícita e auditável: só admin
	sessoesGroup.Post("/:id/estornar-realizacao", RequirePerfil("admin"), sessaoHandler.EstornarRealizacao)

	// Estoque: itens, documentos e saldo
	estoqueHandler := NewEstoqueHandler(deps.EstoqueUC)

	itens := protected.Group("/itens")
	itens.Post("/", estoqueHandler.CriarItem)
	itens.Get("/", estoqueHandler.ListarItens)

	entradas := protected.Group("/entradas-estoque")
	entradas.Post("/", estoqueHandler.RegistrarEntrada)
	entradas.Get("/", estoqueHandler.ListarEntradas)
	entradas.Post("/:id/estornar", RequirePerfil("admin"), estoqueHandler.EstornarEntrada)

	saidas := protected.Group("/saidas-estoque")
	saidas.Post("/", estoqueHandler.RegistrarSaida)
	saidas.Get("/", estoqueHandler.ListarSaidas)
	saidas.Post("/:id/estornar", RequirePerfil("admin"), estoqueHandler.EstornarSaida)

	estoqueGroup := protected.Group("/estoque")
	estoqueGroup.Get("/", estoqueHandler.EstoqueAtual)
	estoqueGroup.Get("/:item_id", estoqueHandler.EstoqueAtualItem)
}
