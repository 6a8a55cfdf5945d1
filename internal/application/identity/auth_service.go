package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/smartsales/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	users identity.UserRepository
	jwt   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// RegisterRequest contains the input to create an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// UserDTO is the outward representation of a user
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token pair and the authenticated user
type LoginResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  UserDTO   `json:"user"`
}

// RefreshRequest contains a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register creates a new account owner
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	user, err := identity.NewUser(req.Name, req.Email, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		return nil, invalidCredentials()
	}

	pair, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  toUserDTO(user),
	}, nil
}

// Refresh validates a refresh token and issues a fresh token pair.
// The user must still exist; tokens for deleted accounts are rejected.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid or expired refresh token")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid or expired refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid or expired refresh token")
		}
		return nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  toUserDTO(user),
	}, nil
}

func invalidCredentials() error {
	return shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
}

func toUserDTO(user *identity.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}
