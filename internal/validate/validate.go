package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	reQ        = regexp.MustCompile(`^[A-Za-z0-9 _.'\-]{1,50}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reLogin    = regexp.MustCompile(`^[A-Za-z0-9._%+@-]{1,64}$`)
	reCategory = regexp.MustCompile(`^[A-Za-z0-9 &_-]{1,40}$`)

	maxPrice = decimal.NewFromInt(1_000_000)
)

const (
	MaxQty     = 50
	MaxStock   = 1_000_000
	MaxText    = 2000
	MaxMessage = 500
)

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Qty treats a missing quantity as 1 and rejects negative or oversized ones.
func Qty(n int) (int, bool) {
	switch {
	case n == 0:
		return 1, true
	case n < 0, n > MaxQty:
		return 0, false
	}
	return n, true
}

// ID validates a simple resource identifier (product ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Login validates the identifier typed at sign in. Seeded accounts use
// plain names, so an email shape is not required.
func Login(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reLogin.MatchString(s)
}

// Password bounds the secret length; bcrypt ignores bytes past 72.
func Password(s string) bool {
	return len(s) >= 1 && len(s) <= 72
}

func NewPassword(s string) bool {
	return utf8.RuneCountInString(s) >= 4 && Password(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 80 {
		return "", false
	}
	return s, true
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCategory.MatchString(s)
}

// Price accepts non-negative amounts with at most two decimal places.
func Price(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxPrice) && d.Equal(d.Round(2))
}

func Stock(n int) bool { return n >= 0 && n <= MaxStock }

func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 200 {
		return "", false
	}
	return s, true
}

// Text bounds free-form copy. Empty is allowed.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) <= max
}
