// seed carga clubs y pedidos de un libro Excel usando los mismos casos de uso que la API,
// de modo que los pedidos pasan por la asignación de lote y la numeración del club.
//
// Uso: go run ./cmd/seed [ruta/carga.xlsx]
// Por defecto busca carga.xlsx en el directorio actual. Requiere la configuración de BD de la API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/postgres"
	"github.com/jhoicas/clubmerch-api/pkg/config"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

func main() {
	path := "carga.xlsx"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	f, err := excelize.OpenFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir libro: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	data, err := parseWorkbook(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer libro: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	clubUC := usecase.NewClubUseCase(postgres.NewClubRepository(pool))
	orderUC := usecase.NewOrderUseCase(postgres.NewTxRunner(pool), postgres.NewOrderRepository(pool), log)

	res, err := load(ctx, clubUC, orderUC, data)
	if err != nil {
		log.Fatal().Err(err).Msg("carga interrumpida")
	}
	log.Info().
		Int("clubs", res.clubs).
		Int("clubs_existentes", res.skippedClubs).
		Int("pedidos", res.orders).
		Msg("carga completada")
}

type loadResult struct {
	clubs, skippedClubs, orders int
}

// load da de alta clubs (los ya existentes se saltan) y después los pedidos.
func load(ctx context.Context, clubUC *usecase.ClubUseCase, orderUC *usecase.OrderUseCase, data *seedData) (loadResult, error) {
	var res loadResult
	for _, c := range data.Clubs {
		_, err := clubUC.Create(ctx, c)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			res.skippedClubs++
		case err != nil:
			return res, fmt.Errorf("club %s: %w", c.Name, err)
		default:
			res.clubs++
		}
	}
	for _, o := range data.Orders {
		if _, err := orderUC.CreateOrder(ctx, o.ClubCode, o.Request); err != nil {
			return res, fmt.Errorf("pedido %s/%s: %w", o.ClubCode, o.Ref, err)
		}
		res.orders++
	}
	return res, nil
}
