package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenPair holds the generated access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService signs the access and refresh JWTs handed out at sign-in.
type TokenService struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is empty")
	}
	return &TokenService{secretKey: []byte(secret), now: time.Now}, nil
}

// GenerateTokenPair returns the pair and the refresh token's jti.
func (s *TokenService) GenerateTokenPair(userID, email, role string) (*TokenPair, string, error) {
	accessToken, err := s.generateToken(userID, email, role, "access", AccessTokenTTL, "")
	if err != nil {
		return nil, "", err
	}

	tokenID := uuid.NewString()
	refreshToken, err := s.generateToken(userID, email, role, "refresh", RefreshTokenTTL, tokenID)
	if err != nil {
		return nil, "", err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, tokenID, nil
}

func (s *TokenService) generateToken(userID, email, role, tokenType string, ttl time.Duration, tokenID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"typ":   tokenType,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}
	if tokenID != "" {
		claims["jti"] = tokenID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}
