package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/vishvpatel010/ai-quizzer/config"
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
	"github.com/vishvpatel010/ai-quizzer/internal/model"
	"github.com/vishvpatel010/ai-quizzer/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type AuthService interface {
	Register(req dto.RegisterRequest) error
	Login(req dto.LoginRequest) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Register(req dto.RegisterRequest) error {
	if len(req.Username) < 3 {
		return invalidInput("Username must be at least 3 characters long")
	}
	if req.Email == "" {
		return invalidInput("Email should not be empty")
	}
	if len(req.Password) < 8 {
		return invalidInput("Password must be at least 8 characters long")
	}

	if _, err := s.userRepo.FindByUsernameOrEmail(req.Username, req.Email); err == nil {
		return invalidInput("Username or email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking existing users: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return fmt.Errorf("error registering user: %w", err)
	}
	return nil
}

func (s *authService) Login(req dto.LoginRequest) (string, error) {
	if len(req.Username) < 3 {
		return "", invalidInput("Username must be at least 3 characters long")
	}
	if len(req.Password) < 8 {
		return "", invalidInput("Password must be at least 8 characters long")
	}

	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", invalidInput("Invalid credentials")
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", invalidInput("Invalid credentials")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		log.Warn().Err(err).Uint("userID", user.ID).Msg("Failed to update last login timestamp")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"exp":    now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}
