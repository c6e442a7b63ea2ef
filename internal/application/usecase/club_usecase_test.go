package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/memory"
)

func TestClubUseCase_Create(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewClubUseCase(store.Clubs())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateClubRequest{
		Name:          "  C.D. Leganés Fútbol Sala ",
		Password:      "secreto1",
		CommissionPct: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "C.D. Leganés Fútbol Sala", out.Name)
	assert.Equal(t, "C-D-LEGANES-FUTBOL-SALA", out.Code)
	assert.True(t, out.HasPortalAccess)

	stored, err := store.Clubs().GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))

	_, err = uc.Create(ctx, dto.CreateClubRequest{Name: "Otro", Code: "c-d-leganes-futbol-sala"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el código se normaliza antes de comprobar duplicados")

	sinAcceso, err := uc.Create(ctx, dto.CreateClubRequest{Name: "Rayo", Code: "rayo"})
	require.NoError(t, err)
	assert.Equal(t, "RAYO", sinAcceso.Code)
	assert.False(t, sinAcceso.HasPortalAccess)
}

func TestClubUseCase_CreateValidaciones(t *testing.T) {
	uc := usecase.NewClubUseCase(memory.NewStore().Clubs())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateClubRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateClubRequest{Name: "¿?"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateClubRequest{Name: "Club", CommissionPct: decimal.NewFromInt(101)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateClubRequest{Name: "Club", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClubUseCase_UpdateYList(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewClubUseCase(store.Clubs())
	ctx := context.Background()

	b, err := uc.Create(ctx, dto.CreateClubRequest{Name: "Zamora", Password: "secreto1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateClubRequest{Name: "Alcorcón"})
	require.NoError(t, err)

	name := "Zamora C.F."
	pct := decimal.RequireFromString("7.5")
	empty := ""
	out, err := uc.Update(ctx, b.ID, dto.UpdateClubRequest{Name: &name, CommissionPct: &pct, Password: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Zamora C.F.", out.Name)
	assert.Equal(t, "ZAMORA", out.Code, "el código no cambia al renombrar")
	assert.True(t, out.CommissionPct.Equal(pct))
	assert.False(t, out.HasPortalAccess, "contraseña vacía retira el acceso")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Alcorcón", list.Items[0].Name)

	_, err = uc.Update(ctx, "nope", dto.UpdateClubRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
