package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"` // may carry markup
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Images      []string        `json:"images,omitempty"` // gallery
	Specs       []string        `json:"specs,omitempty"`  // highlights
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleBuyer Role = "buyer"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"` // login identifier, not necessarily an address
	Role  Role   `json:"role"`
	Hash  string `json:"passwordHash,omitempty"`
}

// Profile is the user without its credential, safe to persist in a session
// or return to a client.
func (u User) Profile() User {
	u.Hash = ""
	return u
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
