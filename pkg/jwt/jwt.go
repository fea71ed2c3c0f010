package jwt

import (
	"errors"
	"time"

	"blood-donation-api/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	UserID    uint      `json:"userId"`
	TokenType TokenType `json:"tokenType"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.JWTConfig
	now    func() time.Time
}

type Option func(*JWTService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

func NewJWTService(cfg config.JWTConfig, opts ...Option) *JWTService {
	s := &JWTService{config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JWTService) IssueAccessToken(userID uint) (string, error) {
	return s.issue(userID, AccessToken, s.config.AccessSecret, s.config.AccessExpiry)
}

func (s *JWTService) IssueRefreshToken(userID uint) (string, error) {
	return s.issue(userID, RefreshToken, s.config.RefreshSecret, s.config.RefreshExpiry)
}

func (s *JWTService) issue(userID uint, tokenType TokenType, secret string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify checks the signature before the expiry, so a token signed with another
// secret is reported as ErrInvalidToken even when it has also expired.
func (s *JWTService) Verify(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *JWTService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return s.verifyType(tokenString, s.config.AccessSecret, AccessToken)
}

func (s *JWTService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return s.verifyType(tokenString, s.config.RefreshSecret, RefreshToken)
}

func (s *JWTService) verifyType(tokenString, secret string, want TokenType) (*Claims, error) {
	claims, err := s.Verify(tokenString, secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != want {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

func (s *JWTService) GetRefreshExpiry() time.Duration {
	return s.config.RefreshExpiry
}
