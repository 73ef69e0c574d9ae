package entity

import (
	"fmt"

	"github.com/jhoicas/financebi-api/internal/domain"
)

// AppView vista de presentación seleccionada por el operador.
type AppView string

const (
	ViewDashboard AppView = "dashboard"
	ViewClients   AppView = "clients"
	ViewRanking   AppView = "ranking"
	ViewImport    AppView = "import"
)

// SessionFlagKey clave bajo la que se persiste el flag de autenticación.
const SessionFlagKey = "finance_bi_auth"

// ParseAppView valida el nombre de una vista.
func ParseAppView(s string) (AppView, error) {
	switch v := AppView(s); v {
	case ViewDashboard, ViewClients, ViewRanking, ViewImport:
		return v, nil
	}
	return "", fmt.Errorf("%w: vista desconocida %q", domain.ErrInvalidInput, s)
}

// AppState contenedor explícito del estado de la aplicación.
//
// Transiciones:
//
//	Login    → Authenticated = true, View = dashboard
//	Logout   → Authenticated = false, View = dashboard
//	Navigate → cambia View (solo autenticado)
type AppState struct {
	Authenticated bool
	View          AppView
}

// NewAppState estado inicial: no autenticado, vista dashboard.
func NewAppState(authenticated bool) AppState {
	return AppState{Authenticated: authenticated, View: ViewDashboard}
}

// Login devuelve el estado tras un login exitoso.
func (s AppState) Login() AppState {
	return AppState{Authenticated: true, View: ViewDashboard}
}

// Logout devuelve el estado tras cerrar sesión.
func (s AppState) Logout() AppState {
	return AppState{Authenticated: false, View: ViewDashboard}
}

// Navigate cambia la vista activa.
func (s AppState) Navigate(view AppView) (AppState, error) {
	if !s.Authenticated {
		return s, domain.ErrSessionRequired
	}
	s.View = view
	return s, nil
}
