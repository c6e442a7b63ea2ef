package report_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clubmerch-api/internal/application/report"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/production"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/memory"
)

type fakeRenderer struct {
	got production.Sheet
}

func (f *fakeRenderer) Render(_ context.Context, s production.Sheet) ([]byte, error) {
	f.got = s
	return []byte("ok"), nil
}
func (f *fakeRenderer) Extension() string   { return "csv" }
func (f *fakeRenderer) ContentType() string { return "text/csv" }

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Clubs().Create(ctx, &entity.Club{ID: "c1", Name: "Rayo", Code: "RAYO"}))
	require.NoError(t, store.Batches().Create(ctx, &entity.Batch{ID: "b1", ClubID: "c1", Type: entity.BatchTypeGlobal, Number: 1, Status: entity.StatusProduction}))
	item := entity.OrderItem{Name: "Camiseta", Size: "M", Quantity: 1, UnitPrice: decimal.NewFromInt(20)}
	for _, o := range []*entity.Order{
		{ID: "o1", GlobalID: "RAYO-000001", ClubID: "c1", BatchType: entity.BatchTypeGlobal, BatchNumber: 1, Status: entity.StatusProduction, Items: []entity.OrderItem{item}},
		{ID: "o2", GlobalID: "RAYO-000002", ClubID: "c1", BatchType: entity.BatchTypeGlobal, BatchNumber: 1, Status: entity.StatusProduction, Items: []entity.OrderItem{item}},
		{ID: "i1", GlobalID: "RAYO-000003", ClubID: "c1", BatchType: entity.BatchTypeIndividual, Status: entity.StatusProduction, Items: []entity.OrderItem{item}},
		{ID: "i2", GlobalID: "RAYO-000004", ClubID: "c1", BatchType: entity.BatchTypeIndividual, Status: entity.StatusDeliveredCustomer, Items: []entity.OrderItem{item}},
	} {
		require.NoError(t, store.Orders().Create(ctx, o))
	}
	return store
}

func TestSheetUseCase_Download(t *testing.T) {
	store := seed(t)
	r := &fakeRenderer{}
	uc := report.NewSheetUseCase(store.Clubs(), store.Batches(), store.Orders(), r)

	doc, err := uc.Download(context.Background(), "c1", entity.BatchTypeGlobal, 1, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "produccion_RAYO_1.csv", doc.Filename)
	assert.Equal(t, "text/csv", doc.ContentType)
	assert.Equal(t, []byte("ok"), doc.Body)

	assert.Equal(t, "Rayo", r.got.ClubName)
	assert.Equal(t, entity.StatusProduction, r.got.Status)
	assert.Equal(t, 2, r.got.Units)
	require.Len(t, r.got.Lines, 1)
	assert.Equal(t, 2, r.got.Lines[0].Quantity)
	assert.False(t, r.got.GeneratedAt.IsZero())
}

func TestSheetUseCase_Individual(t *testing.T) {
	store := seed(t)
	uc := report.NewSheetUseCase(store.Clubs(), store.Batches(), store.Orders())

	sheet, err := uc.Sheet(context.Background(), "c1", entity.BatchTypeIndividual, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.IndividualKey, sheet.BatchKey)
	assert.Equal(t, 1, sheet.Orders, "los entregados al cliente no se fabrican")
}

func TestSheetUseCase_Errores(t *testing.T) {
	store := seed(t)
	uc := report.NewSheetUseCase(store.Clubs(), store.Batches(), store.Orders(), &fakeRenderer{})
	ctx := context.Background()

	_, err := uc.Download(ctx, "c1", entity.BatchTypeGlobal, 1, "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Download(ctx, "c1", entity.BatchTypeGlobal, 9, "csv")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Download(ctx, "nope", entity.BatchTypeGlobal, 1, "csv")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Sheet(ctx, "c1", "otro", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
