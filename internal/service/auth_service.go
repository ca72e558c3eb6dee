package service

import (
	"context"
	"errors"
	"time"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/config"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/middleware"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Same message for unknown user and wrong password.
		return nil, apierror.New(apierror.Unauthenticated, "Credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.New(apierror.Unauthenticated, "Credenciales invalidas")
	}
	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.New(apierror.Unauthenticated, "Refresh token invalido o expirado")
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apierror.New(apierror.Unauthenticated, "Token mal formado")
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, apierror.New(apierror.Unauthenticated, "Usuario no encontrado o inactivo")
	}
	return s.buildLoginResponse(user)
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rol := model.Rol(req.Rol)
	if !rol.Valido() {
		return nil, apierror.Newf(apierror.InvalidArgument, "Rol desconocido: %q", req.Rol)
	}
	if rol == model.RolDealer && req.ConcesionarioID == nil {
		return nil, apierror.New(apierror.InvalidArgument, "Un usuario dealer necesita concesionario_id")
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, apierror.New(apierror.AlreadyExists, "El username ya esta en uso")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errAlmacen("auth.crear", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, errAlmacen("auth.crear", err)
	}

	user := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	if req.ConcesionarioID != nil {
		cid, err := uuid.Parse(*req.ConcesionarioID)
		if err != nil {
			return nil, apierror.New(apierror.InvalidArgument, "concesionario_id invalido")
		}
		user.ConcesionarioID = &cid
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, errAlmacen("auth.crear", err)
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) buildLoginResponse(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, errAlmacen("auth.login", err)
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, errAlmacen("auth.login", err)
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := middleware.JWTClaims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Rol:      user.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if user.ConcesionarioID != nil {
		cid := user.ConcesionarioID.String()
		claims.ConcesionarioID = &cid
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Rol:      string(u.Rol),
		Activo:   u.Activo,
	}
	if u.ConcesionarioID != nil {
		cid := u.ConcesionarioID.String()
		resp.ConcesionarioID = &cid
	}
	return resp
}
