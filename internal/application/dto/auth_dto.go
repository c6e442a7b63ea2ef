package dto

// AdminLoginRequest acceso al panel de administración.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// ClubLoginRequest acceso al portal de un club.
type ClubLoginRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ClubID    string `json:"club_id,omitempty"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
