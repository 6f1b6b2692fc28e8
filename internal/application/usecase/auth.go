package usecase

import (
	"context"
	"log"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/security"
)

// RefreshStore tracks issued refresh tokens so they can be revoked.
type RefreshStore interface {
	SaveRefresh(ctx context.Context, userID string, refreshToken string) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}

type AuthUseCase struct {
	users        UserRepository
	tokenCache   RefreshStore
	hasher       PasswordHasher
	tokenManager *security.TokenManager
}

func NewAuthUseCase(ur UserRepository, tc RefreshStore, h PasswordHasher, tm *security.TokenManager) *AuthUseCase {
	return &AuthUseCase{
		users:        ur,
		tokenCache:   tc,
		hasher:       h,
		tokenManager: tm,
	}
}

// Login accepts a username or an email address as the login name.
func (uc *AuthUseCase) Login(ctx context.Context, login, password string) (string, string, error) {
	user, err := uc.users.GetByUsername(ctx, login)
	if isNotFound(err) {
		user, err = uc.users.GetByEmail(ctx, login)
	}
	if err != nil {
		if isNotFound(err) {
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", err
	}
	if !user.Active {
		return "", "", domain.ErrInvalidCredentials
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	return uc.generateAndSaveTokens(ctx, user.ID.String(), string(user.Role))
}

func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (string, string, error) {
	claims, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	cachedID, err := uc.tokenCache.CheckRefresh(ctx, oldRefreshToken)
	if err != nil || cachedID != claims.UserID {
		return "", "", domain.ErrInvalidCredentials
	}
	if err := uc.tokenCache.DeleteRefresh(ctx, oldRefreshToken); err != nil {
		log.Printf("failed to revoke refresh token: %v", err)
	}

	return uc.generateAndSaveTokens(ctx, claims.UserID, claims.Role)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenCache.DeleteRefresh(ctx, refreshToken)
}

func (uc *AuthUseCase) ValidateAccess(token string) (*security.Claims, error) {
	return uc.tokenManager.ValidateAccessToken(token)
}

func (uc *AuthUseCase) generateAndSaveTokens(ctx context.Context, userID, role string) (string, string, error) {
	access, refresh, err := uc.tokenManager.Generate(userID, role)
	if err != nil {
		return "", "", err
	}

	if err := uc.tokenCache.SaveRefresh(ctx, userID, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
