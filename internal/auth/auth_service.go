package auth

import (
	"context"
	"os"
	"time"

	autherrors "github.com/Ayabe1990/management-pro-project-sub001/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, email, password string) (TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPairResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.tokenPair(user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	return s.tokenPair(user)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	return &AuthResponse{
		ID:         user.ID.String(),
		EmployeeID: user.EmployeeID.String(),
		Email:      user.Email,
		Role:       user.Role,
	}, nil
}

func (s *service) tokenPair(user *UserAccount) (TokenPairResponse, error) {
	accessToken, err := s.generateToken(user, time.Minute*15)
	if err != nil {
		return TokenPairResponse{}, err
	}
	refreshToken, err := s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return TokenPairResponse{}, err
	}

	return TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: AuthResponse{
			ID:         user.ID.String(),
			EmployeeID: user.EmployeeID.String(),
			Email:      user.Email,
			Role:       user.Role,
		},
	}, nil
}

func (s *service) generateToken(user *UserAccount, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": user.EmployeeID.String(),
		"role":        user.Role,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
