// Package xlsx exporta la hoja de producción a Excel con excelize: una hoja con
// el resumen por producto y talla y otra con las personalizaciones.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/report"
	"github.com/jhoicas/clubmerch-api/internal/domain/production"
)

// Nombres de las hojas del libro.
const (
	SheetLines            = "Producción"
	SheetPersonalizations = "Personalizaciones"
)

var _ report.SheetRenderer = (*SheetExporter)(nil)

// SheetExporter implementa report.SheetRenderer.
type SheetExporter struct{}

// NewSheetExporter construye el exportador.
func NewSheetExporter() *SheetExporter { return &SheetExporter{} }

func (e *SheetExporter) Extension() string { return "xlsx" }
func (e *SheetExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render genera el libro y devuelve sus bytes.
func (e *SheetExporter) Render(_ context.Context, sheet production.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetLines); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if _, err := f.NewSheet(SheetPersonalizations); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// Hoja 1: cabecera del lote + tabla producto/talla/unidades.
	meta := [][]interface{}{
		{"Club", sheet.ClubName},
		{"Código", sheet.ClubCode},
		{"Lote", sheet.BatchKey},
		{"Estado", sheet.Status},
		{"Pedidos", sheet.Orders},
		{"Unidades", sheet.Units},
	}
	rowN := 1
	for _, m := range meta {
		if err := setRow(f, SheetLines, rowN, m); err != nil {
			return nil, err
		}
		rowN++
	}
	rowN++
	if err := writeTable(f, SheetLines, rowN, header, []interface{}{"Producto", "Referencia", "Talla", "Unidades"}); err != nil {
		return nil, err
	}
	for _, l := range sheet.Lines {
		rowN++
		if err := setRow(f, SheetLines, rowN, []interface{}{l.Name, l.ProductID, l.Size, l.Quantity}); err != nil {
			return nil, err
		}
	}

	// Hoja 2: personalizaciones.
	if err := writeTable(f, SheetPersonalizations, 1, header, []interface{}{"Pedido", "Cliente", "Prenda", "Talla", "Nombre", "Número", "Unidades"}); err != nil {
		return nil, err
	}
	for i, p := range sheet.Personalizations {
		if err := setRow(f, SheetPersonalizations, i+2, []interface{}{
			p.OrderGlobalID, p.Customer, p.ProductName, p.Size, p.Name, p.Number, p.Quantity,
		}); err != nil {
			return nil, err
		}
	}

	for _, w := range []struct {
		sheet, from, to string
		width           float64
	}{
		{SheetLines, "A", "B", 28},
		{SheetLines, "C", "D", 12},
		{SheetPersonalizations, "A", "C", 22},
		{SheetPersonalizations, "D", "G", 12},
	} {
		if err := f.SetColWidth(w.sheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d de %s: %w", row, sheet, err)
	}
	return nil
}

// writeTable escribe la cabecera de una tabla con estilo en la fila indicada.
func writeTable(f *excelize.File, sheet string, row, style int, headers []interface{}) error {
	if err := setRow(f, sheet, row, headers); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	return nil
}
