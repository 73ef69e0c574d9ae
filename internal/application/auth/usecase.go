package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
	"github.com/jhoicas/financebi-api/pkg/jwt"
)

// flagValue valor persistido bajo entity.SessionFlagKey mientras hay sesión.
const flagValue = "true"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials usuario y contraseña configurados del operador.
type Credentials struct {
	Username string
	Password string
}

// SessionUseCase login, logout y navegación entre vistas.
// El flag de sesión vive en el SessionStore; el AppState en memoria lo refleja.
type SessionUseCase struct {
	store        repository.SessionStore
	username     string
	passwordHash []byte
	jwtCfg       JWTConfig

	mu    sync.Mutex
	state entity.AppState
}

// NewSessionUseCase hashea la contraseña configurada con bcrypt y arranca sin sesión.
// Llamar a Restore para recuperar el flag persistido.
func NewSessionUseCase(store repository.SessionStore, creds Credentials, jwtCfg JWTConfig) (*SessionUseCase, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: credenciales del operador vacías", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &SessionUseCase{
		store:        store,
		username:     creds.Username,
		passwordHash: hash,
		jwtCfg:       jwtCfg,
		state:        entity.NewAppState(false),
	}, nil
}

// Restore lee el flag persistido: presente = autenticado, ausente = no autenticado.
func (uc *SessionUseCase) Restore(ctx context.Context) (dto.SessionDTO, error) {
	active, err := uc.IsActive(ctx)
	if err != nil {
		return dto.SessionDTO{}, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state = entity.NewAppState(active)
	return toSessionDTO(uc.state), nil
}

// Login verifica las credenciales, persiste el flag y emite un JWT.
func (uc *SessionUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user := strings.TrimSpace(in.Username)
	if user == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(uc.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.username, uuid.New().String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	if err := uc.store.Set(ctx, entity.SessionFlagKey, flagValue); err != nil {
		return nil, fmt.Errorf("persistir sesión: %w", err)
	}

	uc.mu.Lock()
	uc.state = uc.state.Login()
	session := toSessionDTO(uc.state)
	uc.mu.Unlock()

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Session:   session,
	}, nil
}

// Logout elimina el flag. Los tokens emitidos dejan de servir porque el middleware exige el flag.
func (uc *SessionUseCase) Logout(ctx context.Context) (dto.SessionDTO, error) {
	if err := uc.store.Delete(ctx, entity.SessionFlagKey); err != nil {
		return dto.SessionDTO{}, fmt.Errorf("cerrar sesión: %w", err)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state = uc.state.Logout()
	return toSessionDTO(uc.state), nil
}

// IsActive informa si el flag de sesión está presente en el store.
func (uc *SessionUseCase) IsActive(ctx context.Context) (bool, error) {
	v, ok, err := uc.store.Get(ctx, entity.SessionFlagKey)
	if err != nil {
		return false, fmt.Errorf("leer sesión: %w", err)
	}
	return ok && v == flagValue, nil
}

// Status estado actual de la aplicación.
func (uc *SessionUseCase) Status(ctx context.Context) (dto.SessionDTO, error) {
	active, err := uc.IsActive(ctx)
	if err != nil {
		return dto.SessionDTO{}, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state.Authenticated != active {
		uc.state = entity.NewAppState(active)
	}
	return toSessionDTO(uc.state), nil
}

// Navigate cambia la vista activa; requiere sesión.
func (uc *SessionUseCase) Navigate(ctx context.Context, view string) (dto.SessionDTO, error) {
	v, err := entity.ParseAppView(view)
	if err != nil {
		return dto.SessionDTO{}, err
	}
	if _, err := uc.Status(ctx); err != nil {
		return dto.SessionDTO{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	next, err := uc.state.Navigate(v)
	if err != nil {
		return dto.SessionDTO{}, err
	}
	uc.state = next
	return toSessionDTO(uc.state), nil
}

func toSessionDTO(s entity.AppState) dto.SessionDTO {
	return dto.SessionDTO{Authenticated: s.Authenticated, View: string(s.View)}
}
