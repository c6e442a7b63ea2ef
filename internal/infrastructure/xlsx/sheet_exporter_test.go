package xlsx_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/clubmerch-api/internal/domain/production"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/xlsx"
)

func TestSheetExporter_Render(t *testing.T) {
	sheet := production.Sheet{
		ClubName: "Rayo",
		ClubCode: "RAYO",
		BatchKey: "ERR-2",
		Status:   "en_produccion",
		Orders:   2,
		Units:    3,
		Lines: []production.Line{
			{ProductID: "p1", Name: "Camiseta", Size: "M", Quantity: 2},
			{ProductID: "p2", Name: "Sudadera", Size: "L", Quantity: 1},
		},
		Personalizations: []production.Personalization{
			{OrderGlobalID: "RAYO-000004-R1", Customer: "Ana", ProductName: "Camiseta", Size: "M", Name: "ANA", Number: "7", Quantity: 1},
		},
	}

	data, err := xlsx.NewSheetExporter().Render(context.Background(), sheet)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsx.SheetLines, xlsx.SheetPersonalizations}, f.GetSheetList())

	rows, err := f.GetRows(xlsx.SheetLines)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lote", "ERR-2"}, rows[2])
	assert.Equal(t, []string{"Unidades", "3"}, rows[5])
	assert.Equal(t, []string{"Producto", "Referencia", "Talla", "Unidades"}, rows[7])
	assert.Equal(t, []string{"Camiseta", "p1", "M", "2"}, rows[8])
	assert.Len(t, rows, 10)

	pers, err := f.GetRows(xlsx.SheetPersonalizations)
	require.NoError(t, err)
	require.Len(t, pers, 2)
	assert.Equal(t, []string{"RAYO-000004-R1", "Ana", "Camiseta", "M", "ANA", "7", "1"}, pers[1])
}
