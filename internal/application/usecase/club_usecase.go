package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/pkg/textnorm"
)

var hundred = decimal.NewFromInt(100)

// ClubUseCase casos de uso CRUD para clubs.
type ClubUseCase struct {
	repo repository.ClubRepository
}

// NewClubUseCase construye el caso de uso.
func NewClubUseCase(repo repository.ClubRepository) *ClubUseCase {
	return &ClubUseCase{repo: repo}
}

// Create da de alta un club. Si no se indica código se deriva del nombre.
func (uc *ClubUseCase) Create(ctx context.Context, in dto.CreateClubRequest) (*dto.ClubResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	code := textnorm.Code(in.Code)
	if code == "" {
		code = textnorm.Code(name)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: no se puede derivar un código de %q", domain.ErrInvalidInput, name)
	}
	if err := validateCommission(in.CommissionPct); err != nil {
		return nil, err
	}

	now := time.Now()
	club := &entity.Club{
		ID:            uuid.New().String(),
		Name:          name,
		Code:          code,
		CommissionPct: in.CommissionPct,
		ContactEmail:  strings.TrimSpace(in.ContactEmail),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		club.PasswordHash = hash
	}
	if err := uc.repo.Create(ctx, club); err != nil {
		return nil, err
	}
	return dto.FromClub(club), nil
}

// GetByID obtiene un club. domain.ErrNotFound si no existe.
func (uc *ClubUseCase) GetByID(ctx context.Context, id string) (*dto.ClubResponse, error) {
	club, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromClub(club), nil
}

// List lista los clubs por nombre.
func (uc *ClubUseCase) List(ctx context.Context) (*dto.ClubListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClubResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.FromClub(c))
	}
	return &dto.ClubListResponse{Items: items}, nil
}

// Update modifica nombre, comisión, email o contraseña. Una contraseña vacía retira el acceso al portal.
func (uc *ClubUseCase) Update(ctx context.Context, id string, in dto.UpdateClubRequest) (*dto.ClubResponse, error) {
	club, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		club.Name = name
	}
	if in.ContactEmail != nil {
		club.ContactEmail = strings.TrimSpace(*in.ContactEmail)
	}
	if in.CommissionPct != nil {
		if err := validateCommission(*in.CommissionPct); err != nil {
			return nil, err
		}
		club.CommissionPct = *in.CommissionPct
	}
	if in.Password != nil {
		club.PasswordHash = ""
		if *in.Password != "" {
			if club.PasswordHash, err = hashPassword(*in.Password); err != nil {
				return nil, err
			}
		}
	}
	club.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, club); err != nil {
		return nil, err
	}
	return dto.FromClub(club), nil
}

func validateCommission(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: la comisión debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	if len(plain) < 6 {
		return "", fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash de contraseña: %w", err)
	}
	return string(hash), nil
}
