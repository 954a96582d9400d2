package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/seu-usuario/clinica-ledger/internal/application/estoque"
	"github.com/seu-usuario/clinica-ledger/internal/application/sessoes"
	"github.com/seu-usuario/clinica-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/seu-usuario/clinica-ledger/internal/interfaces/http"
	"github.com/seu-usuario/clinica-ledger/pkg/config"
	"github.com/seu-usuario/clinica-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)

	// Repositórios atados ao pool: caminhos de leitura e validação prévia.
	// As mutações usam os repositórios atados à tx dentro do TxRunner.
	pacoteRepo := postgres.NewPacoteTratamentoRepository(pool)
	sessaoRepo := postgres.NewAgendamentoSessaoRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewMovimentoEstoqueRepository(pool)
	entradaRepo := postgres.NewEntradaEstoqueRepository(pool)
	saidaRepo := postgres.NewSaidaEstoqueRepository(pool)

	sessoesUC := sessoes.NewUseCase(txRunner, pacoteRepo, sessaoRepo)
	estoqueUC := estoque.NewUseCase(txRunner, itemRepo, movRepo, entradaRepo, saidaRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clínica Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessoesUC: sessoesUC,
		EstoqueUC: estoqueUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
