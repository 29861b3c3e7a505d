package services

import (
	"context"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

// SessionService holds the authenticated user of each session. The user is
// rehydrated from the store the first time a session is seen and is never
// revalidated against the account collection. Only logged-in sessions are
// cached.
type SessionService struct {
	KV    repos.KV
	Carts *CartService

	mu    sync.Mutex
	users map[string]*domain.User
	subs  listeners[*domain.User]
}

func NewSessionService(kv repos.KV, carts *CartService) *SessionService {
	return &SessionService{KV: kv, Carts: carts, users: map[string]*domain.User{}}
}

// Current returns nil when nobody is logged in on sid.
func (s *SessionService) Current(ctx context.Context, sid string) (*domain.User, error) {
	if sid == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[sid]; ok {
		return u, nil
	}
	u, ok, err := repos.Peek[domain.User](ctx, s.KV, repos.SessionUserKey(sid))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	s.users[sid] = &u
	return &u, nil
}

func (s *SessionService) Login(ctx context.Context, sid string, u domain.User) error {
	p := u.Profile()
	s.mu.Lock()
	if err := repos.Write(ctx, s.KV, repos.SessionUserKey(sid), p); err != nil {
		s.mu.Unlock()
		return err
	}
	s.users[sid] = &p
	s.mu.Unlock()
	s.subs.notify(sid, &p)
	return nil
}

// Logout forgets the user and empties the session's cart.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	s.mu.Lock()
	if err := s.KV.Delete(ctx, repos.SessionUserKey(sid)); err != nil {
		s.mu.Unlock()
		return err
	}
	delete(s.users, sid)
	s.mu.Unlock()
	if s.Carts != nil {
		if err := s.Carts.Clear(ctx, sid); err != nil {
			return err
		}
	}
	s.subs.notify(sid, nil)
	return nil
}

// Rotate moves the cart held on from to the session to and forgets any user
// still logged in on from. Callers use it to hand out a fresh sid at sign in.
func (s *SessionService) Rotate(ctx context.Context, from, to string) error {
	if from == "" || from == to {
		return nil
	}
	if s.Carts != nil {
		if err := s.Carts.Move(ctx, from, to); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.KV.Delete(ctx, repos.SessionUserKey(from)); err != nil {
		return err
	}
	delete(s.users, from)
	return nil
}

func (s *SessionService) Subscribe(fn func(sid string, u *domain.User)) func() {
	return s.subs.add(fn)
}
