package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = 24 * time.Hour
	minPasswordLength = 8
)

type Authenticator interface {
	LoginUser(email, password string) (*domain.LoginResponse, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg       *config.Config
	operators map[string]domain.Operator
	now       func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg:       cfg,
		operators: Operators(cfg.Auth),
		now:       time.Now,
	}
}

// Operators monta a lista de operadores configurados, indexada pelo email
func Operators(auth config.Auth) map[string]domain.Operator {
	operators := make(map[string]domain.Operator)

	add := func(email, hash string, roleID int) {
		email = handleEmail(email)
		if email == "" || hash == "" {
			return
		}
		operators[email] = domain.Operator{Email: email, PasswordHash: hash, RoleID: roleID}
	}

	add(auth.AnalystEmail, auth.AnalystPasswordHash, domain.RoleAnalyst)
	add(auth.AdminEmail, auth.AdminPasswordHash, domain.RoleAdmin)

	if len(operators) == 0 {
		logrus.Warn("Nenhum operador configurado, login desabilitado")
	}

	return operators
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	return strings.ReplaceAll(email, " ", "")
}

func (s *Service) LoginUser(email, password string) (*domain.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	operator, ok := s.operators[email]
	if !ok {
		return nil, NewOperatorAuthError(ErrUserNotFound, apiErrors.ErrInvalidCredentials, email, "Operador não encontrado")
	}

	// Verificar senha
	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		return nil, NewOperatorAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, email, "Senha incorreta")
	}

	expiresAt := s.now().Add(s.tokenTTL())
	token, err := generateJWT(operator, expiresAt, s.cfg.Auth.Secret)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		RoleID:    operator.RoleID,
	}, nil
}

func (s *Service) tokenTTL() time.Duration {
	if s.cfg.Auth.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return s.cfg.Auth.TokenTTL
}

func generateJWT(operator domain.Operator, expiresAt time.Time, secretKey string) (string, error) {
	claims := domain.Claims{
		UserEmail:  operator.Email,
		UserRoleID: operator.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "claims inválidas")
}

// HashPassword gera o hash bcrypt usado nas variáveis AUTH_*_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: a senha deve conter pelo menos %d caracteres", ErrWeakPassword, minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}
