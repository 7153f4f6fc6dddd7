package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// The text is shown to the user as is.
var ErrInvalidCredentials = errors.New("Invalid login credentials")

type ITokenService interface {
	GenerateTokenPair(userID, email, role string) (*TokenPair, string, error)
}

// PasswordIdentityProvider signs users in against the users table and
// records each refresh token in the session store.
type PasswordIdentityProvider struct {
	users    repository.UserRepo
	tokens   ITokenService
	sessions repository.SessionStore
	metrics  MetricsRecorder
}

func NewPasswordIdentityProvider(users repository.UserRepo, tokens ITokenService, sessions repository.SessionStore, metrics MetricsRecorder) *PasswordIdentityProvider {
	return &PasswordIdentityProvider{users: users, tokens: tokens, sessions: sessions, metrics: metrics}
}

func (p *PasswordIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	log := logger.FromContext(ctx)

	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			recordAsync(p.metrics, awspkg.MetricSignInFailures, nil)
			return nil, ErrInvalidCredentials
		}
		log.Error("user lookup failed", zap.Error(err))
		return nil, apperrors.Upstream(fmt.Errorf("user lookup: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		recordAsync(p.metrics, awspkg.MetricSignInFailures, nil)
		return nil, ErrInvalidCredentials
	}

	pair, jti, err := p.tokens.GenerateTokenPair(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if p.sessions != nil {
		if err := p.sessions.Save(ctx, jti, user.ID.String(), RefreshTokenTTL); err != nil {
			log.Error("failed to record refresh session", zap.Error(err))
			return nil, err
		}
	}

	recordAsync(p.metrics, awspkg.MetricSignIns, nil)
	return &models.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(AccessTokenTTL.Seconds()),
	}, nil
}

// HashPassword is used when seeding users.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
