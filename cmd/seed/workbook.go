package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
)

// Hojas esperadas en el libro de carga.
const (
	sheetClubs  = "Clubs"
	sheetOrders = "Pedidos"
)

// Columnas de la hoja Pedidos. Las filas con la misma referencia y club forman un pedido;
// los datos de cabecera se toman de la primera fila.
const (
	colClub = iota
	colRef
	colCustomer
	colEmail
	colPhone
	colPayment
	colShipping
	colIndividual
	colProduct
	colSize
	colPersName
	colPersNumber
	colQty
	colPrice
	colCost
	orderCols
)

type seedOrder struct {
	ClubCode string
	Ref      string
	Request  dto.CreateOrderRequest
}

type seedData struct {
	Clubs  []dto.CreateClubRequest
	Orders []seedOrder
}

// parseWorkbook lee clubs y pedidos. La primera fila de cada hoja es cabecera.
func parseWorkbook(f *excelize.File) (*seedData, error) {
	var data seedData

	rows, err := f.GetRows(sheetClubs)
	if err != nil {
		return nil, fmt.Errorf("hoja %s: %w", sheetClubs, err)
	}
	for i, row := range skipHeader(rows) {
		line := i + 2
		name := cell(row, 0)
		if name == "" {
			continue
		}
		pct, err := parseDecimal(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: comisión: %w", sheetClubs, line, err)
		}
		data.Clubs = append(data.Clubs, dto.CreateClubRequest{
			Name:          name,
			Code:          cell(row, 1),
			CommissionPct: pct,
			ContactEmail:  cell(row, 3),
			Password:      cell(row, 4),
		})
	}

	rows, err = f.GetRows(sheetOrders)
	if err != nil {
		return nil, fmt.Errorf("hoja %s: %w", sheetOrders, err)
	}
	index := make(map[string]int)
	for i, row := range skipHeader(rows) {
		line := i + 2
		club, ref := strings.ToUpper(cell(row, colClub)), cell(row, colRef)
		if club == "" || ref == "" {
			continue
		}
		item, err := parseItem(row)
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: %w", sheetOrders, line, err)
		}
		key := club + "|" + ref
		if pos, ok := index[key]; ok {
			data.Orders[pos].Request.Items = append(data.Orders[pos].Request.Items, item)
			continue
		}
		shipping, err := parseDecimal(cell(row, colShipping))
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: envío: %w", sheetOrders, line, err)
		}
		index[key] = len(data.Orders)
		data.Orders = append(data.Orders, seedOrder{
			ClubCode: club,
			Ref:      ref,
			Request: dto.CreateOrderRequest{
				CustomerName:       cell(row, colCustomer),
				CustomerEmail:      cell(row, colEmail),
				CustomerPhone:      cell(row, colPhone),
				PaymentMethod:      strings.ToLower(cell(row, colPayment)),
				ShippingFee:        shipping,
				IndividualShipping: parseBool(cell(row, colIndividual)),
				Items:              []dto.OrderItemRequest{item},
				Notes:              "importado: " + ref,
			},
		})
	}
	return &data, nil
}

func parseItem(row []string) (dto.OrderItemRequest, error) {
	qty, err := strconv.Atoi(cell(row, colQty))
	if err != nil {
		return dto.OrderItemRequest{}, fmt.Errorf("cantidad %q", cell(row, colQty))
	}
	price, err := parseDecimal(cell(row, colPrice))
	if err != nil {
		return dto.OrderItemRequest{}, fmt.Errorf("precio: %w", err)
	}
	cost, err := parseDecimal(cell(row, colCost))
	if err != nil {
		return dto.OrderItemRequest{}, fmt.Errorf("coste: %w", err)
	}
	return dto.OrderItemRequest{
		Name:                  cell(row, colProduct),
		Size:                  cell(row, colSize),
		PersonalizationName:   cell(row, colPersName),
		PersonalizationNumber: cell(row, colPersNumber),
		Quantity:              qty,
		UnitPrice:             price,
		UnitCost:              cost,
	}, nil
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// cell tolera filas cortas: excelize omite las celdas vacías del final.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "si", "sí", "s", "x", "1", "true":
		return true
	}
	return false
}
