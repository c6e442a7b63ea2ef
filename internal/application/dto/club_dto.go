package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClubRequest entrada para dar de alta un club.
type CreateClubRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Code          string          `json:"code"` // opcional: se deriva del nombre
	ContactEmail  string          `json:"contact_email"`
	Password      string          `json:"password"` // acceso al portal del club
	CommissionPct decimal.Decimal `json:"commission_pct"`
}

// UpdateClubRequest entrada para actualizar un club. Los campos nil no cambian.
type UpdateClubRequest struct {
	Name          *string          `json:"name"`
	ContactEmail  *string          `json:"contact_email"`
	Password      *string          `json:"password"`
	CommissionPct *decimal.Decimal `json:"commission_pct"`
}

// ClubResponse salida de un club (sin hash de contraseña).
type ClubResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	ContactEmail    string          `json:"contact_email"`
	CommissionPct   decimal.Decimal `json:"commission_pct"`
	HasPortalAccess bool            `json:"has_portal_access"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ClubListResponse lista de clubs.
type ClubListResponse struct {
	Items []ClubResponse `json:"items"`
}

// DeleteResultResponse resumen de un borrado en cascada.
type DeleteResultResponse struct {
	Orders  int `json:"orders"`
	Batches int `json:"batches"`
	Clubs   int `json:"clubs"`
}
