package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

// MinPasswordLength largo mínimo de contraseña en el registro.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y alta de administrador.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea un usuario con rol "user", hashea la contraseña con bcrypt y devuelve un token.
// ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}
	user, err := uc.createUser(ctx, email, in.Password, name, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Credenciales incorrectas y usuario inexistente devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

// EnsureAdmin crea el administrador si no existe o promueve al usuario existente.
// Devuelve created=true si el usuario fue creado.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password, name string) (created bool, err error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < MinPasswordLength {
		return false, fmt.Errorf("%w: email y contraseña de administrador inválidos", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if existing.Role == entity.RoleAdmin {
			return false, nil
		}
		return false, uc.userRepo.UpdateRole(ctx, existing.ID, entity.RoleAdmin)
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrador"
	}
	if _, err := uc.createUser(ctx, email, password, name, entity.RoleAdmin); err != nil {
		// Otro proceso lo creó entre la lectura y el insert.
		if errors.Is(err, domain.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (uc *AuthUseCase) createUser(ctx context.Context, email, password, name, role string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash de contraseña: %w", err)
	}
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
