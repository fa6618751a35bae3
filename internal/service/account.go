package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Skotchmaster/smart_shopper/internal/hash"
	"github.com/Skotchmaster/smart_shopper/internal/logging"
	"github.com/Skotchmaster/smart_shopper/internal/models"
	"github.com/Skotchmaster/smart_shopper/internal/mykafka"
	"github.com/Skotchmaster/smart_shopper/internal/repo"
	"github.com/Skotchmaster/smart_shopper/internal/tokens"
)

type AccountService struct {
	Repo          *repo.GormRepo
	Producer      *mykafka.Producer
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AccountService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

func (s *AccountService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: firstName and lastName required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
	})
	return user, nil
}

// Login collapses "unknown email" and "wrong password" into one error so
// the response cannot be used to enumerate accounts.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	sub := strconv.FormatUint(uint64(user.ID), 10)

	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.SignAccess(sub, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refreshToken, err := tokens.SignRefresh(sub, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddRefresh(ctx, tokens.Sha256Hex(refreshToken), claims.ID, user.ID, refreshExp.Unix()); err != nil {
		return nil, err
	}

	s.publish(ctx, sub, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()
	return s.Repo.RevokeRefresh(ctx, tokens.Sha256Hex(refreshToken))
}

func (s *AccountService) User(ctx context.Context, id uint) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) Users(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()
	return s.Repo.Users(ctx)
}

func (s *AccountService) UpdateUser(ctx context.Context, id uint, firstName, lastName, email string) (*models.User, error) {
	if firstName == "" || lastName == "" || email == "" {
		return nil, fmt.Errorf("%w: firstName, lastName and email required", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	user, err := s.Repo.UpdateUser(ctx, id, firstName, lastName, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}
