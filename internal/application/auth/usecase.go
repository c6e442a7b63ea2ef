package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/pkg/jwt"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminCredential contraseña del panel. PasswordHash (bcrypt) tiene prioridad sobre Password.
type AdminCredential struct {
	Password     string
	PasswordHash string
}

// AuthUseCase emite tokens para el panel (admin) y para el portal de cada club.
type AuthUseCase struct {
	clubRepo repository.ClubRepository
	admin    AdminCredential
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(clubRepo repository.ClubRepository, admin AdminCredential, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{clubRepo: clubRepo, admin: admin, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// AdminLogin comprueba la contraseña configurada y emite un token con rol admin.
func (uc *AuthUseCase) AdminLogin(ctx context.Context, in dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	if !uc.adminPasswordOK(in.Password) {
		uc.log.Warn().Msg("acceso de administración rechazado")
		return nil, domain.ErrUnauthorized
	}
	return uc.issue("admin", jwt.RoleAdmin, "")
}

func (uc *AuthUseCase) adminPasswordOK(password string) bool {
	if password == "" {
		return false
	}
	if uc.admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(password)) == nil
	}
	if uc.admin.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(uc.admin.Password), []byte(password)) == 1
}

// ClubLogin verifica código y contraseña del club y emite un token con rol club.
func (uc *AuthUseCase) ClubLogin(ctx context.Context, in dto.ClubLoginRequest) (*dto.LoginResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}
	club, err := uc.clubRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if club == nil || club.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(club.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("club", code).Msg("acceso al portal rechazado")
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(club.ID, jwt.RoleClub, club.ID)
}

func (uc *AuthUseCase) issue(subject, role, clubID string) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, subject, role, clubID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		Role:      role,
		ClubID:    clubID,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
