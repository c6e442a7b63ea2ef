package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/memory"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const clubID = "club-1"

func setup(t *testing.T) (*memory.Store, *batch.LifecycleUseCase) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Clubs().Create(context.Background(), &entity.Club{
		ID: clubID, Name: "C.D. Leganés", Code: "CDL", CommissionPct: decimal.NewFromInt(10),
	}))
	uc := batch.NewLifecycleUseCase(store, store.Batches(), store.Orders(), logger.Nop())
	return store, uc
}

func addOrder(t *testing.T, store *memory.Store, id, batchType string, number int, status string) {
	t.Helper()
	require.NoError(t, store.Orders().Create(context.Background(), &entity.Order{
		ID: id, GlobalID: "CDL-" + id, ClubID: clubID,
		BatchType: batchType, BatchNumber: number, Status: status,
		Items:     []entity.OrderItem{{Name: "Camiseta", Size: "M", Quantity: 1, UnitPrice: decimal.NewFromInt(20)}},
		Total:     decimal.NewFromInt(20),
		CreatedAt: time.Now(),
	}))
}

func orderStatus(t *testing.T, store *memory.Store, id string) string {
	t.Helper()
	o, err := store.Orders().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o.Status
}

func activeNumber(t *testing.T, store *memory.Store, batchType string) int {
	t.Helper()
	b, err := store.Batches().GetActive(context.Background(), clubID, batchType)
	require.NoError(t, err)
	require.NotNil(t, b, "debe existir un lote activo %s", batchType)
	return b.Number
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureActiveBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureActiveBatch_CreaPrimeroYReutiliza(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	b1, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	assert.Equal(t, 1, b1.Number)
	assert.Equal(t, entity.StatusCollecting, b1.Status)

	b2, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	assert.Equal(t, b1.ID, b2.ID, "no debe abrir un segundo lote activo")

	e1, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeError)
	require.NoError(t, err)
	assert.Equal(t, "ERR-1", e1.Key, "cada tipo tiene su propia numeración")
}

func TestEnsureActiveBatch_ClubInexistente(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.EnsureActiveBatch(context.Background(), "nope", entity.BatchTypeGlobal)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureActiveBatch_TipoInvalido(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.EnsureActiveBatch(context.Background(), clubID, entity.BatchTypeIndividual)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdvanceBatch / RevertBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestAdvanceBatch_AbreSiguienteYMuevePedidos(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	addOrder(t, store, "o3", entity.BatchTypeGlobal, 1, entity.StatusCancelled)

	res, err := uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusProduction, res.Batch.Status)
	assert.NotNil(t, res.Batch.ProductionAt)
	assert.EqualValues(t, 2, res.OrdersUpdated, "los cancelados no cambian de estado")
	require.NotNil(t, res.OpenedBatch)
	assert.Equal(t, 2, res.OpenedBatch.Number)
	assert.Equal(t, 2, activeNumber(t, store, entity.BatchTypeGlobal))

	assert.Equal(t, entity.StatusProduction, orderStatus(t, store, "o1"))
	assert.Equal(t, entity.StatusCancelled, orderStatus(t, store, "o3"))

	res, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDeliveredClub, res.Batch.Status)
	assert.Nil(t, res.OpenedBatch, "solo se abre lote al salir de recopilando")
	assert.Equal(t, entity.StatusDeliveredClub, orderStatus(t, store, "o2"))

	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	assert.ErrorIs(t, err, domain.ErrConflict, "entregado_club es final")
}

func TestAdvanceBatch_LoteVacio(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	addOrder(t, store, "c1", entity.BatchTypeGlobal, 1, entity.StatusCancelled)

	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, activeNumber(t, store, entity.BatchTypeGlobal), "sin cambios tras el error")
}

func TestAdvanceBatch_NoExiste(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.AdvanceBatch(context.Background(), clubID, entity.BatchTypeGlobal, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevertBatch_DescartaActivoVacio(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeError)
	require.NoError(t, err)
	addOrder(t, store, "r1", entity.BatchTypeError, 1, entity.StatusCollecting)
	adv, err := uc.AdvanceBatch(ctx, clubID, entity.BatchTypeError, 1)
	require.NoError(t, err)

	res, err := uc.RevertBatch(ctx, clubID, entity.BatchTypeError, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCollecting, res.Batch.Status)
	assert.Nil(t, res.Batch.ProductionAt)
	assert.Equal(t, adv.OpenedBatch.ID, res.ClosedBatchID)
	assert.Equal(t, 1, activeNumber(t, store, entity.BatchTypeError), "ERR-1 vuelve a ser el activo")
	assert.Equal(t, entity.StatusCollecting, orderStatus(t, store, "r1"))

	gone, err := store.Batches().Get(ctx, clubID, entity.BatchTypeError, 2)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRevertBatch_ActivoConPedidos(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 2, entity.StatusCollecting)

	_, err = uc.RevertBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.StatusProduction, orderStatus(t, store, "o1"), "rollback completo")
	assert.Equal(t, 2, activeNumber(t, store, entity.BatchTypeGlobal))
}

func TestRevertBatch_LoteIntermedioEnProduccion(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 2, entity.StatusCollecting)
	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 2)
	require.NoError(t, err)

	_, err = uc.RevertBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	assert.ErrorIs(t, err, domain.ErrConflict, "el lote 2 ya está en producción")
}

func TestRevertBatch_DeEntregadoAProduccion(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 2, entity.StatusCollecting) // lote 2 se abrirá después
	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)
	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)

	res, err := uc.RevertBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProduction, res.Batch.Status)
	assert.Nil(t, res.Batch.DeliveredAt)
	assert.Empty(t, res.ClosedBatchID)
	assert.Equal(t, entity.StatusProduction, orderStatus(t, store, "o1"))
	assert.Equal(t, 2, activeNumber(t, store, entity.BatchTypeGlobal))
}

func TestRevertBatch_RecopilandoNoRetrocede(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	_, err = uc.RevertBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListBatches_CuentaPedidos(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	_, err = uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeError)
	require.NoError(t, err)
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 1, entity.StatusCancelled)

	out, err := uc.ListBatches(ctx, clubID)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "1", out.Items[0].Key)
	assert.Equal(t, 1, out.Items[0].Orders)
	assert.Equal(t, "ERR-1", out.Items[1].Key)
}
