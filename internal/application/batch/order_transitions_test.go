package batch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

func TestAdvanceOrder_Individual(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	addOrder(t, store, "i1", entity.BatchTypeIndividual, 0, entity.StatusCollecting)

	out, err := uc.AdvanceOrder(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProduction, out.Status)

	out, err = uc.AdvanceOrder(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDeliveredCustomer, out.Status)

	_, err = uc.AdvanceOrder(ctx, "i1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err = uc.RevertOrder(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProduction, out.Status)
}

func TestAdvanceOrder_PedidoDeLote(t *testing.T) {
	store, uc := setup(t)
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)

	_, err := uc.AdvanceOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdvanceOrder_NoExiste(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.AdvanceOrder(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMoveOrder_AlLoteActivo(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	_, err := uc.EnsureActiveBatch(ctx, clubID, entity.BatchTypeGlobal)
	require.NoError(t, err)
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	_, err = uc.AdvanceBatch(ctx, clubID, entity.BatchTypeGlobal, 1)
	require.NoError(t, err)

	// o2 no se pudo fabricar: pasa al lote 2, que está recopilando.
	out, err := uc.MoveOrder(ctx, "o2", "2")
	require.NoError(t, err)
	assert.Equal(t, "2", out.BatchKey)
	assert.Equal(t, entity.StatusCollecting, out.Status)

	_, err = uc.MoveOrder(ctx, "o1", "1")
	require.NoError(t, err, "mover al mismo lote no hace nada")

	addOrder(t, store, "o3", entity.BatchTypeGlobal, 2, entity.StatusCollecting)
	_, err = uc.MoveOrder(ctx, "o3", "1")
	assert.ErrorIs(t, err, domain.ErrConflict, "el lote 1 ya no recopila")
}

func TestMoveOrder_AIndividualYErrores(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)

	out, err := uc.MoveOrder(ctx, "o1", "individual")
	require.NoError(t, err)
	assert.Equal(t, entity.BatchTypeIndividual, out.BatchType)
	assert.Equal(t, 0, out.BatchNumber)

	_, err = uc.MoveOrder(ctx, "o1", "ERR-4")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.MoveOrder(ctx, "o1", "lote-raro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelOrder(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusCollecting)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 1, entity.StatusDeliveredClub)

	out, err := uc.CancelOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, out.Status)

	_, err = uc.CancelOrder(ctx, "o1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.CancelOrder(ctx, "o2")
	assert.ErrorIs(t, err, domain.ErrConflict, "un pedido entregado no se cancela")

	_, err = uc.MoveOrder(ctx, "o1", "INDIVIDUAL")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
