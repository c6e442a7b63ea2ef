package main

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/memory"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

func buildWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheetClubs))
	_, err := f.NewSheet(sheetOrders)
	require.NoError(t, err)

	clubs := [][]any{
		{"nombre", "codigo", "comision", "email", "password"},
		{"Rayo Vallecano", "", "10", "tienda@rayo.es", "clave123"},
		{"Getafe", "GET", "7,5"},
	}
	orders := [][]any{
		{"club", "ref", "cliente", "email", "telefono", "pago", "envio", "individual", "producto", "talla", "nombre", "dorsal", "cantidad", "precio", "coste"},
		{"rayo-vallecano", "A1", "Ana", "", "", "CARD", "4,5", "", "Camiseta", "m", "ANA", "7", "2", "25", "10"},
		{"rayo-vallecano", "A1", "", "", "", "", "", "", "Bufanda", "", "", "", "1", "12", "4"},
		{"GET", "B1", "Luis", "", "", "bizum", "", "sí", "Gorra", "", "", "", "1", "15", "5"},
		{"", "", "fila vacía"},
	}
	for i, row := range clubs {
		require.NoError(t, f.SetSheetRow(sheetClubs, cellName(t, i+1), &row))
	}
	for i, row := range orders {
		require.NoError(t, f.SetSheetRow(sheetOrders, cellName(t, i+1), &row))
	}
	return f
}

func cellName(t *testing.T, row int) string {
	name, err := excelize.CoordinatesToCellName(1, row)
	require.NoError(t, err)
	return name
}

func TestParseWorkbook(t *testing.T) {
	data, err := parseWorkbook(buildWorkbook(t))
	require.NoError(t, err)

	require.Len(t, data.Clubs, 2)
	assert.Equal(t, "Rayo Vallecano", data.Clubs[0].Name)
	assert.True(t, data.Clubs[1].CommissionPct.Equal(decimal.RequireFromString("7.5")))

	require.Len(t, data.Orders, 2)
	first := data.Orders[0]
	assert.Equal(t, "RAYO-VALLECANO", first.ClubCode)
	assert.Equal(t, "card", first.Request.PaymentMethod)
	assert.True(t, first.Request.ShippingFee.Equal(decimal.RequireFromString("4.5")))
	require.Len(t, first.Request.Items, 2, "las filas con la misma referencia forman un pedido")
	assert.Equal(t, "Bufanda", first.Request.Items[1].Name)
	assert.True(t, data.Orders[1].Request.IndividualShipping)
}

func TestParseWorkbook_CantidadInvalida(t *testing.T) {
	f := buildWorkbook(t)
	require.NoError(t, f.SetCellValue(sheetOrders, "M2", "dos"))
	_, err := parseWorkbook(f)
	assert.ErrorContains(t, err, "fila 2")
}

func TestLoad_EnMemoria(t *testing.T) {
	data, err := parseWorkbook(buildWorkbook(t))
	require.NoError(t, err)

	store := memory.NewStore()
	clubUC := usecase.NewClubUseCase(store.Clubs())
	orderUC := usecase.NewOrderUseCase(store, store.Orders(), logger.Nop())
	ctx := context.Background()

	res, err := load(ctx, clubUC, orderUC, data)
	require.NoError(t, err)
	assert.Equal(t, loadResult{clubs: 2, orders: 2}, res)

	// Repetir la carga no duplica clubs
	res, err = load(ctx, clubUC, orderUC, &seedData{Clubs: data.Clubs})
	require.NoError(t, err)
	assert.Equal(t, 2, res.skippedClubs)

	orders, err := store.Orders().List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	keys := map[string]bool{}
	for _, o := range orders {
		keys[o.BatchKey()] = true
	}
	assert.Equal(t, map[string]bool{"1": true, "INDIVIDUAL": true}, keys)
}
