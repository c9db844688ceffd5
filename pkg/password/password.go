// Package password provides bcrypt hashing, strength rules and secure
// password generation.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/codes"
)

// Cost is the bcrypt work factor. OWASP A02 recommends at least 10; we run
// at 12 like the rest of the stack.
const Cost = 12

const specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// Hash returns the bcrypt hash of a plaintext password.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// NeedsRehash reports whether a stored hash was created with an outdated
// cost and should be regenerated on next successful login.
func NeedsRehash(hashed string) bool {
	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		return true
	}
	return cost < Cost
}

// Policy controls strength validation and generation.
type Policy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

// DefaultPolicy mirrors the application default: 8+ characters with upper,
// lower and a digit; special characters optional.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
	}
}

func strengthError(reason string) *apperr.Error {
	return apperr.New(apperr.KindValidation, codes.ValidationError,
		"Password security requirement failed: "+reason,
		map[string]any{"reason": reason})
}

// ValidateStrength checks a password against a policy and returns a typed
// validation failure naming the first unmet rule.
func ValidateStrength(plain string, policy Policy) error {
	if len(plain) < policy.MinLength {
		minLen := policy.MinLength
		return apperr.BadLength("password", &minLen, nil)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RequireUppercase && !hasUpper {
		return strengthError("At least one uppercase letter required")
	}
	if policy.RequireLowercase && !hasLower {
		return strengthError("At least one lowercase letter required")
	}
	if policy.RequireNumber && !hasNumber {
		return strengthError("At least one number required")
	}
	if policy.RequireSpecial && !hasSpecial {
		return strengthError("At least one special character required")
	}
	return nil
}

// Generate produces a random password of the given length guaranteeing at
// least one character from each required class.
func Generate(length int, policy Policy) (string, error) {
	const (
		uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		lowercase = "abcdefghijklmnopqrstuvwxyz"
		digits    = "0123456789"
	)

	var pool string
	var out []byte

	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, fmt.Errorf("password: generate: %w", err)
		}
		return set[n.Int64()], nil
	}

	addClass := func(set string) error {
		pool += set
		c, err := pick(set)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}

	if policy.RequireUppercase {
		if err := addClass(uppercase); err != nil {
			return "", err
		}
	}
	if policy.RequireLowercase {
		if err := addClass(lowercase); err != nil {
			return "", err
		}
	}
	if policy.RequireNumber {
		if err := addClass(digits); err != nil {
			return "", err
		}
	}
	if policy.RequireSpecial {
		if err := addClass(specialChars); err != nil {
			return "", err
		}
	}
	if pool == "" {
		pool = uppercase + lowercase + digits
	}

	for len(out) < length {
		c, err := pick(pool)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates with crypto randomness so required-class characters do
	// not cluster at the front.
	for i := len(out) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("password: generate: %w", err)
		}
		j := n.Int64()
		out[i], out[j] = out[j], out[i]
	}
	return string(out[:length]), nil
}
