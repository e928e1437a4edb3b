package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/barledger/internal/domain"
	"github.com/prn-tf/barledger/internal/metrics"
	"github.com/prn-tf/barledger/internal/repository"
)

// PasswordCost is the bcrypt cost used for every stored hash.
const PasswordCost = bcrypt.DefaultCost

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// timingDummyHash returns a valid hash used to burn the same CPU time when
// the username is unknown.
func timingDummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("barledger-timing-dummy"), PasswordCost)
	})
	return dummyHash
}

// CredentialService registers and verifies operators.
type CredentialService struct {
	userRepo repository.UserRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(userRepo repository.UserRepository, m *metrics.Metrics, logger zerolog.Logger) *CredentialService {
	if m == nil {
		m = metrics.New()
	}
	return &CredentialService{
		userRepo: userRepo,
		metrics:  m,
		logger:   logger.With().Str("service", "credential").Logger(),
	}
}

// Register creates an account. It returns false, without error, when the
// username is already taken; the existing account is left untouched.
func (s *CredentialService) Register(ctx context.Context, username, password string) (bool, error) {
	if username == "" {
		return false, ErrInvalidUsername
	}
	if len(password) == 0 || len(password) > maxPasswordBytes {
		return false, ErrInvalidPassword
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to check username existence")
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if exists {
		s.logger.Debug().Str("username", username).Msg("username already registered")
		return false, nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return false, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}

	user := domain.NewUser(username, string(passwordHash))
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return false, nil
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create user")
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.metrics.UsersRegistered.Inc()
	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user registered")

	return true, nil
}

// Verify reports whether password matches the stored hash for username.
// Unknown users and wrong passwords both yield false.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Msg("failed to load user during verification")
			return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		// Log but don't expose whether username exists
		_ = bcrypt.CompareHashAndPassword(timingDummyHash(), []byte(password))
		s.logger.Debug().Str("username", username).Msg("user not found during verification")
		s.metrics.RecordLogin(false)
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("stored password hash is unreadable")
		}
		s.logger.Debug().Str("username", username).Msg("invalid password during verification")
		s.metrics.RecordLogin(false)
		return false, nil
	}

	s.metrics.RecordLogin(true)
	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user authenticated")

	return true, nil
}

// Count returns the number of registered users.
func (s *CredentialService) Count(ctx context.Context) (int64, error) {
	n, err := s.userRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count users")
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return n, nil
}
