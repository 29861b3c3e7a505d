package repos

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

var ErrUserExists = errors.New("user exists")

// Hasher turns credentials into their stored form and checks them back.
type Hasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}

type BcryptHasher struct{ Cost int }

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(b), err
}

func (h BcryptHasher) Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type UserRepo struct {
	kv     KV
	hasher Hasher
	seed   []domain.User
	mu     sync.Mutex
	now    func() time.Time
}

// NewUserRepo hashes the seed accounts up front so the default collection is
// ready whenever the users key is first read.
func NewUserRepo(kv KV, hasher Hasher) (*UserRepo, error) {
	seed := make([]domain.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		h, err := hasher.Hash(u.Password)
		if err != nil {
			return nil, err
		}
		seed = append(seed, domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Hash: h})
	}
	return &UserRepo{kv: kv, hasher: hasher, seed: seed, now: time.Now}, nil
}

func (r *UserRepo) all(ctx context.Context) ([]domain.User, error) {
	return Read(ctx, r.kv, UsersKey, r.seed)
}

// Login returns the user whose identifier and credential both match, or nil.
func (r *UserRepo) Login(ctx context.Context, email, password string) (*domain.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && r.hasher.Matches(users[i].Hash, password) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Register appends a buyer. The identifier must not be taken.
func (r *UserRepo) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(users))
	for _, u := range users {
		if u.Email == email {
			return nil, ErrUserExists
		}
		ids[u.ID] = true
	}
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	n := r.now().UnixMilli()
	for ids[strconv.FormatInt(n, 10)] {
		n++
	}
	u := domain.User{
		ID:    strconv.FormatInt(n, 10),
		Name:  name,
		Email: email,
		Role:  domain.RoleBuyer,
		Hash:  hash,
	}
	users = append(users, u)
	if err := Write(ctx, r.kv, UsersKey, users); err != nil {
		return nil, err
	}
	return &u, nil
}
