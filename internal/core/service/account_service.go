package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bitforge/playground-api/internal/core/domain"
	"github.com/bitforge/playground-api/internal/core/ports"
	"github.com/bitforge/playground-api/internal/security"
)

// usernameRegex is the single validation rule the flow owns; payload shape
// checks live in the transport layer.
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ProfileCache abstracts the read cache for user profiles (Redis). A miss is
// reported as (nil, nil); cache failures never affect the request outcome.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
}

// AuditSink accepts account activity events for asynchronous recording.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

// AccountService implements registration, login, and identity lookups.
type AccountService struct {
	users  ports.UserRepository
	codes  ports.CodeRepository
	hasher *security.Hasher
	tokens *security.TokenService
	cache  ProfileCache
	audit  AuditSink
	log    zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	codes ports.CodeRepository,
	hasher *security.Hasher,
	tokens *security.TokenService,
	cache ProfileCache,
	audit AuditSink,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:  users,
		codes:  codes,
		hasher: hasher,
		tokens: tokens,
		cache:  cache,
		audit:  audit,
		log:    log,
	}
}

// Signup registers a new account. The email pre-check yields the friendly
// duplicate error; the store's unique index is the authoritative guard, so a
// concurrent duplicate insert still surfaces as domain.ErrUserExists.
func (s *AccountService) Signup(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("signup: %w", err)
	}

	if !usernameRegex.MatchString(in.Username) {
		return "", nil, domain.ErrInvalidUsername
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		SavedCodes:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return "", nil, fmt.Errorf("signup: issue token: %w", err)
	}

	s.record(created.ID, created.Email, domain.ActionSignup)
	return token, created, nil
}

// Login authenticates by email or username and issues a fresh token. An
// email-like identifier (contains "@") attempts an email match only.
func (s *AccountService) Login(ctx context.Context, userID, password string) (string, *domain.User, error) {
	if userID == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	var user *domain.User
	var err error
	if strings.Contains(userID, "@") {
		user, err = s.users.FindByEmail(ctx, userID)
	} else {
		user, err = s.users.FindByUsername(ctx, userID)
	}
	if err != nil {
		return "", nil, err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.record(user.ID, user.Email, domain.ActionLoginFailed)
		return "", nil, domain.ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.record(user.ID, user.Email, domain.ActionLogin)
	return token, user, nil
}

// Logout records the sign-off when the caller presented a verified identity.
// Tokens are stateless: a token stays valid for its full lifetime, the client
// simply discards it.
func (s *AccountService) Logout(ctx context.Context, userID, email string) {
	if userID == "" && email == "" {
		return
	}
	s.record(userID, email, domain.ActionLogout)
}

// UserDetails returns the profile for a verified identity, cache-aside.
func (s *AccountService) UserDetails(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
		}
	}
	return user, nil
}

// MyCodes returns the identity's saved snippets, newest first.
func (s *AccountService) MyCodes(ctx context.Context, userID string) ([]domain.SavedCode, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.codes.FindByOwner(ctx, userID)
}

func (s *AccountService) record(userID, email string, action domain.AuthAction) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{
		UserID:    userID,
		Email:     email,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}
