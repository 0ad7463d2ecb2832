package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/internal/domain/rut"
	"github.com/NinoOnFire/ticashop/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
// El registro público crea siempre un usuario con rol Cliente y su
// perfil de facturación asociado; los vendedores y administradores
// se crean por seed o administración directa.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	clienteRepo repository.ClienteRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, clienteRepo repository.ClienteRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, clienteRepo: clienteRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario cliente: hashea password con bcrypt, valida el
// RUT y persiste usuario + perfil de cliente. Devuelve ErrEmailAlreadyExists
// si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if in.Email == "" || in.Password == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := rut.Validar(in.RUT); err != nil {
		return nil, err
	}
	existing, err := uc.usuarioRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	normalizado := rut.Normalizar(in.RUT)
	if c, err := uc.clienteRepo.GetByRUT(ctx, normalizado); err != nil {
		return nil, err
	} else if c != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	usuario := &entity.Usuario{
		ID:                 uuid.New().String(),
		Email:              in.Email,
		Nombre:             in.Nombre,
		PasswordHash:       string(hash),
		Rol:                entity.RolCliente,
		Activo:             true,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := uc.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	cliente := &entity.Cliente{
		ID:            uuid.New().String(),
		UsuarioID:     &usuario.ID,
		RUT:           normalizado,
		RazonSocial:   in.Nombre,
		FechaCreacion: now,
	}
	if err := uc.clienteRepo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !usuario.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioResponse(usuario),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:            u.ID,
		Email:         u.Email,
		Nombre:        u.Nombre,
		Rol:           u.Rol,
		FechaCreacion: u.FechaCreacion,
	}
}
