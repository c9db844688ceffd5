// Package roles evaluates a decoded claim set against required roles and
// permissions. Checks are pure functions over their inputs.
package roles

import (
	"fmt"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/token"
)

// Role is either a string or an int. Mixed-type comparison (role "1" vs
// allowed 1) is a mismatch, never a coercion.
type Role any

func validateRoles(allowed []Role) error {
	for _, r := range allowed {
		switch r.(type) {
		case string, int:
		default:
			return fmt.Errorf("roles: allowed roles must be string or int, got %T", r)
		}
	}
	return nil
}

// CheckRole reports whether the claim set's role is among the allowed ones.
func CheckRole(claims token.Claims, allowed ...Role) (bool, error) {
	if err := validateRoles(allowed); err != nil {
		return false, err
	}
	role, ok := claims["role"]
	if !ok || role == nil {
		return false, nil
	}
	for _, a := range allowed {
		if matches(role, a) {
			return true, nil
		}
	}
	return false, nil
}

// Require enforces a role requirement. Nil or empty claims fail with
// Unauthorized (no identity at all); an established identity with the wrong
// or missing role fails with Forbidden. On success the claims are returned
// unchanged.
func Require(claims token.Claims, allowed ...Role) (token.Claims, error) {
	if len(claims) == 0 {
		return nil, apperr.Unauthorized("No authentication token provided")
	}
	ok, err := CheckRole(claims, allowed...)
	if err != nil {
		return nil, err
	}
	if !ok {
		role := "None"
		if r, exists := claims["role"]; exists && r != nil {
			role = fmt.Sprintf("%v", r)
		}
		return nil, apperr.Forbidden("Operation not permitted for role: " + role)
	}
	return claims, nil
}

// matches compares a claim role against one allowed role. String roles
// match string claims only. Int roles match any integral numeric claim
// (JSON decoding produces float64), but never a numeric string.
func matches(claim any, allowed Role) bool {
	switch a := allowed.(type) {
	case string:
		c, ok := claim.(string)
		return ok && c == a
	case int:
		switch c := claim.(type) {
		case int:
			return c == a
		case int64:
			return c == int64(a)
		case float64:
			return c == float64(a) && c == float64(int64(c))
		}
	}
	return false
}

// UserInfo is the structured identity extracted from a claim set.
type UserInfo struct {
	Subject   string
	Role      any
	Email     string
	IssuedAt  int64
	ExpiresAt int64
}

// ExtractUserInfo maps a raw claim set to a structured identity.
func ExtractUserInfo(claims token.Claims) UserInfo {
	info := UserInfo{Role: claims["role"]}
	if id, ok := claims["id"]; ok && id != nil {
		info.Subject = fmt.Sprintf("%v", id)
	} else {
		info.Subject = claims.Subject()
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if iat, ok := claims["iat"].(float64); ok {
		info.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = int64(exp)
	}
	return info
}

// Permissions returns the permissions list from the claim set, empty when
// absent.
func Permissions(claims token.Claims) []string {
	raw, ok := claims["permissions"].([]any)
	if !ok {
		return nil
	}
	perms := make([]string, 0, len(raw))
	for _, p := range raw {
		if s, ok := p.(string); ok {
			perms = append(perms, s)
		}
	}
	return perms
}

// HasPermission reports whether a specific permission is present.
func HasPermission(claims token.Claims, required string) bool {
	for _, p := range Permissions(claims) {
		if p == required {
			return true
		}
	}
	return false
}
