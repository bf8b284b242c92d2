package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"
	"github.com/zulven/arkivia-collab-todo/internal/repo"
	"github.com/zulven/arkivia-collab-todo/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

const searchLimit = 20

// UserService handles account registration, credential checks and the
// user-search used by the assignment picker.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

// Register creates a new user with a hashed password and a store-assigned uid.
func (s *UserService) Register(ctx context.Context, username, password string, email, displayName *string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, fmt.Errorf("%w: username and password are required", dom.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		Email:        trimPtr(email),
		DisplayName:  trimPtr(displayName),
		PasswordHash: string(hash),
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, storeErr("create user", err)
	}
	return u, nil
}

// ValidateCredentials checks username and password; returns the user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, storeErr("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetByUID returns the profile behind a uid.
func (s *UserService) GetByUID(ctx context.Context, uid string) (dom.User, error) {
	u, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, dom.ErrNotFound
		}
		return dom.User{}, storeErr("load user", err)
	}
	return u, nil
}

// Search finds users by username, email or display name for assignment.
func (s *UserService) Search(ctx context.Context, q string) ([]dom.User, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []dom.User{}, nil
	}
	list, err := s.repo.Search(ctx, q, searchLimit)
	if err != nil {
		return nil, storeErr("search users", err)
	}
	if list == nil {
		list = []dom.User{}
	}
	return list, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
