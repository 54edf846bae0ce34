package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"liok_hotels/internal/domain"
)

var (
	ErrMissingCredentials = errors.New("both fields are required")
	// ErrInvalidCredentials covers unknown users, wrong passwords and
	// accounts that may not use the back office.
	ErrInvalidCredentials = errors.New("invalid credentials or unauthorized access")
)

type AuthService struct {
	users domain.UserRepository
	cost  int
	now   func() time.Time
}

func NewAuthService(users domain.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, cost: bcryptCost, now: utcNow}
}

// Authenticate returns the staff user owning the credentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrMissingCredentials
	}
	u, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.User{}, ErrInvalidCredentials
	case err != nil:
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	if !u.IsActive || !u.IsStaff {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// StaffUser reloads a session's user and checks it may still use the back office.
func (s *AuthService) StaffUser(ctx context.Context, id int64) (domain.User, error) {
	if id == 0 {
		return domain.User{}, ErrInvalidCredentials
	}
	u, err := s.users.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.User{}, ErrInvalidCredentials
	case err != nil:
		return domain.User{}, err
	}
	if !u.IsActive || !u.IsStaff {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CreateStaff adds an active staff account, or resets the password of an
// existing one and promotes it. created reports which of the two happened.
func (s *AuthService) CreateStaff(ctx context.Context, username, password string) (u domain.User, created bool, err error) {
	username = strings.TrimSpace(username)
	fe := FieldErrors{}
	if username == "" {
		fe.add("username", msgRequired)
	} else if len(username) > 150 {
		fe.add("username", "Ensure this value has at most 150 characters.")
	}
	if password == "" {
		fe.add("password", msgRequired)
	}
	if err := invalid(fe); err != nil {
		return domain.User{}, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, false, err
	}

	u, err = s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		u = domain.User{
			Username: username, PasswordHash: string(hash),
			IsStaff: true, IsActive: true, CreatedAt: s.now(),
		}
		if err := s.users.Create(ctx, &u); err != nil {
			return domain.User{}, false, err
		}
		return u, true, nil
	case err != nil:
		return domain.User{}, false, err
	}
	u.PasswordHash = string(hash)
	u.IsStaff = true
	u.IsActive = true
	if err := s.users.Update(ctx, &u); err != nil {
		return domain.User{}, false, err
	}
	return u, false, nil
}
