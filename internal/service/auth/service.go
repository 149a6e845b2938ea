package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/vetanpay/payroll-backend-go/internal/domain/user"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/jwt"
)

type Service struct {
	userRepo user.Repository
	jwt      jwt.Service
}

func NewService(userRepo user.Repository, jwtService jwt.Service) *Service {
	return &Service{userRepo: userRepo, jwt: jwtService}
}

// Login verifies credentials and issues an access token plus a refresh
// cookie. Unknown email and wrong password return the same error so the
// endpoint never confirms which accounts exist.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (user.TokenResponse, *http.Cookie, error) {
	if err := req.Validate(); err != nil {
		return user.TokenResponse{}, nil, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return user.TokenResponse{}, nil, user.ErrInvalidCredentials
		}
		return user.TokenResponse{}, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return user.TokenResponse{}, nil, user.ErrInvalidCredentials
	}

	accessToken, _, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return user.TokenResponse{}, nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return user.TokenResponse{}, nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return user.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(u),
	}, s.jwt.RefreshTokenCookie(refreshToken, refreshExpiresAt), nil
}

// Register creates an account. Only an administrator or developer can
// create accounts, and only a developer can mint another developer.
func (s *Service) Register(ctx context.Context, actor user.Role, req user.RegisterRequest) (user.UserResponse, error) {
	if !actor.CanFinalize() {
		return user.UserResponse{}, user.ErrAccessDenied
	}
	if req.Role == user.RoleDeveloper && actor != user.RoleDeveloper {
		return user.UserResponse{}, user.ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// GetUser returns one account's public view.
func (s *Service) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}
