package incident_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/incident"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/memory"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

const clubID = "club-1"

func setup(t *testing.T) (*memory.Store, *incident.ReplacementUseCase) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Clubs().Create(ctx, &entity.Club{ID: clubID, Name: "Rayo", Code: "RAYO"}))
	require.NoError(t, store.Batches().Create(ctx, &entity.Batch{
		ID: "b1", ClubID: clubID, Type: entity.BatchTypeGlobal, Number: 1, Status: entity.StatusProduction,
	}))
	require.NoError(t, store.Batches().Create(ctx, &entity.Batch{
		ID: "b2", ClubID: clubID, Type: entity.BatchTypeGlobal, Number: 2, Status: entity.StatusCollecting,
	}))
	return store, incident.NewReplacementUseCase(store, store.Orders(), logger.Nop())
}

func addOrder(t *testing.T, store *memory.Store, id, batchType string, number int, status string) {
	t.Helper()
	require.NoError(t, store.Orders().Create(context.Background(), &entity.Order{
		ID: id, GlobalID: "RAYO-" + id, ClubID: clubID, CustomerName: "Ana",
		BatchType: batchType, BatchNumber: number, Status: status, PaymentMethod: entity.PaymentCard,
		Items: []entity.OrderItem{
			{Name: "Camiseta", Size: "M", Quantity: 2, UnitPrice: decimal.NewFromInt(25), UnitCost: decimal.NewFromInt(9)},
			{Name: "Sudadera", Size: "L", Quantity: 1, UnitPrice: decimal.NewFromInt(40), UnitCost: decimal.NewFromInt(15), PersonalizationName: "ANA", PersonalizationNumber: "7"},
		},
		Total:     decimal.NewFromInt(90),
		CreatedAt: time.Now(),
	}))
}

func TestCreateReplacement_AlLoteDeError(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusProduction)

	out, err := uc.CreateReplacement(ctx, "o1", dto.CreateReplacementRequest{
		Reason: "talla equivocada",
		Items:  []dto.IncidentItemRequest{{ItemIndex: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	r := out.Replacement
	assert.Equal(t, "RAYO-o1-R1", r.GlobalID)
	assert.True(t, r.IsReplacement)
	assert.Equal(t, "o1", r.OriginalOrderID)
	assert.Equal(t, "ERR-1", r.BatchKey, "se abre el primer lote de error")
	assert.Equal(t, entity.StatusCollecting, r.Status)
	assert.True(t, r.Total.IsZero())
	require.Len(t, r.Items, 1)
	assert.True(t, r.Items[0].UnitPrice.IsZero())
	require.NotNil(t, r.Items[0].UnitCost)
	assert.True(t, r.Items[0].UnitCost.Equal(decimal.NewFromInt(15)), "se conserva el coste")
	assert.Equal(t, "ANA", r.Items[0].PersonalizationName)

	assert.Equal(t, r.ID, out.Incident.ReplacementOrderID)
	assert.False(t, out.Incident.Resolved)

	original, err := store.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, original.Incidents, 1)
	assert.Equal(t, "talla equivocada", original.Incidents[0].Reason)

	active, err := store.Batches().GetActive(ctx, clubID, entity.BatchTypeError)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, 1, active.Number)

	// segunda incidencia: reutiliza ERR-1 y numera R2
	out2, err := uc.CreateReplacement(ctx, "o1", dto.CreateReplacementRequest{
		Reason: "mancha",
		Items:  []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "RAYO-o1-R2", out2.Replacement.GlobalID)
	assert.Equal(t, "ERR-1", out2.Replacement.BatchKey)
}

func TestCreateReplacement_Individual(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusDeliveredClub)
	addOrder(t, store, "i1", entity.BatchTypeIndividual, 0, entity.StatusDeliveredCustomer)

	out, err := uc.CreateReplacement(ctx, "o1", dto.CreateReplacementRequest{
		Reason:        "llegó rota",
		Items:         []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}},
		Individual:    true,
		ChargedAmount: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.IndividualKey, out.Replacement.BatchKey)
	assert.True(t, out.Replacement.ChargedAmount.Equal(decimal.NewFromInt(5)))

	out, err = uc.CreateReplacement(ctx, "i1", dto.CreateReplacementRequest{
		Reason: "extraviado",
		Items:  []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.IndividualKey, out.Replacement.BatchKey, "un envío individual se repone igual")

	b, err := store.Batches().GetActive(ctx, clubID, entity.BatchTypeError)
	require.NoError(t, err)
	assert.Nil(t, b, "no se abre lote de error")
}

func TestCreateReplacement_Validaciones(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusProduction)
	addOrder(t, store, "o2", entity.BatchTypeGlobal, 2, entity.StatusCollecting)
	addOrder(t, store, "o3", entity.BatchTypeGlobal, 1, entity.StatusCancelled)

	tests := []struct {
		name    string
		orderID string
		req     dto.CreateReplacementRequest
		wantErr error
	}{
		{"sin motivo", "o1", dto.CreateReplacementRequest{Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}}}, domain.ErrInvalidInput},
		{"sin líneas", "o1", dto.CreateReplacementRequest{Reason: "x"}, domain.ErrInvalidInput},
		{"índice fuera de rango", "o1", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 2, Quantity: 1}}}, domain.ErrInvalidInput},
		{"cantidad excesiva", "o1", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 3}}}, domain.ErrInvalidInput},
		{"cantidad cero", "o1", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 0}}}, domain.ErrInvalidInput},
		{"línea repetida", "o1", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}, {ItemIndex: 0, Quantity: 1}}}, domain.ErrInvalidInput},
		{"cobro negativo", "o1", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}}, ChargedAmount: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
		{"pedido en recopilando", "o2", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}}}, domain.ErrConflict},
		{"pedido cancelado", "o3", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}}}, domain.ErrConflict},
		{"pedido inexistente", "nope", dto.CreateReplacementRequest{Reason: "x", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateReplacement(ctx, tt.orderID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	all, err := store.Orders().List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "ningún error deja reposiciones a medias")
}

func TestResolveAndListIncidents(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	addOrder(t, store, "o1", entity.BatchTypeGlobal, 1, entity.StatusProduction)

	first, err := uc.CreateReplacement(ctx, "o1", dto.CreateReplacementRequest{Reason: "a", Items: []dto.IncidentItemRequest{{ItemIndex: 0, Quantity: 1}}})
	require.NoError(t, err)
	_, err = uc.CreateReplacement(ctx, "o1", dto.CreateReplacementRequest{Reason: "b", Items: []dto.IncidentItemRequest{{ItemIndex: 1, Quantity: 1}}})
	require.NoError(t, err)

	res, err := uc.ResolveIncident(ctx, "o1", first.Incident.ID)
	require.NoError(t, err)
	assert.True(t, res.Resolved)

	open, err := uc.ListIncidents(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, open.Items, 1)
	assert.Equal(t, "b", open.Items[0].Reason)

	all, err := uc.ListIncidents(ctx, clubID, false)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = uc.ResolveIncident(ctx, "o1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
