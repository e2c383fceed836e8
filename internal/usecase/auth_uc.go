package usecase

import (
	"context"
	"errors"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/phenrril/envatex/internal/domain"
)

type AuthUC struct {
	Users  domain.UserRepo
	Tokens domain.TokenIssuer
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// Login checks the credentials and issues an admin token. Every stored user is an admin.
func (uc *AuthUC) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.NewError(domain.ErrMissingField, "Se requieren nombre de usuario y contraseña")
	}
	u, err := uc.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrInvalidCredentials, "Credenciales inválidas")
		}
		return nil, domain.Internal("Error del servidor al acceder a los usuarios", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.NewError(domain.ErrInvalidCredentials, "Credenciales inválidas")
	}
	tok, err := uc.Tokens.Issue(u.Username, domain.RoleAdmin)
	if err != nil {
		return nil, domain.Internal("No se pudo generar el token", err)
	}
	return &LoginResult{AccessToken: tok, Role: domain.RoleAdmin}, nil
}

// Authenticate resolves a bearer token into claims.
func (uc *AuthUC) Authenticate(token string) (domain.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Claims{}, domain.NewError(domain.ErrUnauthorized, "Token de acceso requerido")
	}
	c, err := uc.Tokens.Verify(token)
	if err != nil {
		return domain.Claims{}, &domain.Error{Kind: domain.ErrUnauthorized, Message: "Token inválido o expirado", Details: err.Error()}
	}
	return c, nil
}

// EnsureAdmin creates the bootstrap administrator when it does not exist yet.
func (uc *AuthUC) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := uc.Users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := uc.Users.Save(ctx, &domain.User{Username: username, PasswordHash: string(hash)}); err != nil {
		return false, err
	}
	zlog.Info().Str("username", username).Msg("usuario administrador creado")
	return true, nil
}
