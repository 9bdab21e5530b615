package service

import (
	"context"
	"errors"
	"time"

	"bodega/internal/auth"
	"bodega/internal/config"
	"bodega/internal/dto"
	"bodega/internal/model"
	"bodega/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// ErrCredencialesInvalidas collapses "unknown user" and "wrong password" into
// one outcome. Callers must not learn which field was wrong.
var ErrCredencialesInvalidas = errors.New("credenciales invalidas")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// Login matches the credential pair against usuarios and, on success, issues
// a signed token carrying the account's role. The credential comparison is
// verbatim — see DESIGN.md on the inherited plain-text scheme. The check
// never blocks on anything but the single indexed lookup.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}

	// Best effort: a failed timestamp write must not fail the login.
	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		log.Warn().Err(err).Str("username", user.Username).Msg("no se pudo actualizar last_login")
	}

	token, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	if !auth.Role(user.Role).Valid() {
		// A row that slipped past the CHECK constraint — refuse to mint a
		// token for a role the capability table does not know.
		return "", ErrCredencialesInvalidas
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
