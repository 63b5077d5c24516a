package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

var (
	ErrWrongPassword   = errors.New("wrong password")
	ErrAccountDisabled = errors.New("account disabled")
)

// AuthService registers users and issues bearer tokens.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

// Register creates an enabled account with a bcrypt-hashed password. An empty
// role defaults to the regular user role.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*entity.User, error) {
	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return nil, repository.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = entity.RoleUser
	}

	u := &entity.User{
		Username: username,
		Password: hash,
		Role:     role,
		Enabled:  true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username, "role": u.Role}).Info("user registered")
	}
	return u, nil
}

// Login validates credentials and returns a signed bearer token with its expiry.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrWrongPassword
	}
	if !u.Enabled {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	token, exp, err := s.JWT.GenerateToken(u.ID, u.Username, u.Role)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}
