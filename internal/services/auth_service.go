package services

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

var (
	ErrBadCreds    = errors.New("invalid credentials")
	ErrUserExists  = repos.ErrUserExists
	ErrNotLoggedIn = errors.New("not logged in")
)

type AuthService struct {
	Users    *repos.UserRepo
	Sessions *SessionService
	Latency  time.Duration // simulated round trip on Login
}

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return nil, err
	}
	u, err := s.Users.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrBadCreds
	}
	if err := s.Sessions.Login(ctx, sid, *u); err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

// Register creates a buyer account and logs it in on sid.
func (s *AuthService) Register(ctx context.Context, sid, name, email, password string) (*domain.User, error) {
	u, err := s.Users.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Login(ctx, sid, *u); err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Sessions.Logout(ctx, sid)
}

func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	return s.Sessions.Current(ctx, sid)
}

// Rotate carries a guest's cart over to a newly issued session id.
func (s *AuthService) Rotate(ctx context.Context, from, to string) error {
	return s.Sessions.Rotate(ctx, from, to)
}
