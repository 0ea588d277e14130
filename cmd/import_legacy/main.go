// import_legacy importa para o PostgreSQL um dump JSON do banco antigo
// ({"users": [...], "products": [...]}), inclusive documentos em que os locais
// ainda eram strings simples ("workspaces").
//
// Uso: go run ./cmd/import_legacy -file dump.json [-latin1]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/controle-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/controle-estoque/pkg/config"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

func main() {
	file := flag.String("file", "export.json", "arquivo JSON exportado")
	latin1 := flag.Bool("latin1", false, "o arquivo está em ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir exportação")
	}
	defer f.Close()

	exp, err := decodeExport(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("ler exportação")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.MigratePool(pool); err != nil {
		log.Fatal().Err(err).Msg("migrações")
	}

	im := &importer{
		users:     postgres.NewUserRepository(pool),
		locations: postgres.NewLocationRepository(pool),
		products:  postgres.NewProductRepository(pool),
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
	rep, err := im.run(ctx, exp)
	if err != nil {
		log.Error().Err(err).Msg("importação interrompida")
	}
	log.Info().
		Int("users", rep.Users).
		Int("skipped_users", rep.SkippedUsers).
		Int("products", rep.Products).
		Int("skipped_products", rep.SkippedProducts).
		Int("added_locations", rep.AddedLocations).
		Msg("importação concluída")
	if err != nil {
		os.Exit(1)
	}
}
