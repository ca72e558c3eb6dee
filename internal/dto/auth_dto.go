package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UsuarioResponse struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Nombre          string  `json:"nombre"`
	Rol             string  `json:"rol"`
	ConcesionarioID *string `json:"concesionario_id,omitempty"`
	Activo          bool    `json:"activo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CrearUsuarioRequest struct {
	Username        string  `json:"username" validate:"required"`
	Nombre          string  `json:"nombre"   validate:"required"`
	Password        string  `json:"password" validate:"required,min=8"`
	Rol             string  `json:"rol"      validate:"required,oneof=admin factory dealer"`
	ConcesionarioID *string `json:"concesionario_id" validate:"omitempty,uuid"`
}
