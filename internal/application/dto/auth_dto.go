package dto

// LoginRequest entrada para login. Username acepta usuario o e-mail.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y estado de la sesión.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresIn int        `json:"expires_in"` // segundos
	Session   SessionDTO `json:"session"`
}

// SessionDTO estado de la aplicación visto por el cliente.
type SessionDTO struct {
	Authenticated bool   `json:"authenticated"`
	View          string `json:"view"`
}

// NavigateRequest entrada de PUT /api/session/view.
type NavigateRequest struct {
	View string `json:"view"`
}
