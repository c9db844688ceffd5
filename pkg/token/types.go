package token

import "time"

// Type tags what a token is for. Refresh tokens get their own default
// lifetime; every other type shares the access default unless the caller
// supplies an explicit TTL.
type Type string

const (
	TypeAccess            Type = "access"
	TypeRefresh           Type = "refresh"
	TypeEmailVerification Type = "email_verification"
	TypePasswordReset     Type = "password_reset"
	TypeCustom            Type = "custom"
)

// TTL expresses a lifetime as independently overridable components.
type TTL struct {
	Days    int `yaml:"days" mapstructure:"days"`
	Hours   int `yaml:"hours" mapstructure:"hours"`
	Minutes int `yaml:"minutes" mapstructure:"minutes"`
	Seconds int `yaml:"seconds" mapstructure:"seconds"`
}

// IsZero reports whether no component was supplied.
func (t TTL) IsZero() bool {
	return t.Days == 0 && t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0
}

// Duration collapses the components into a single duration.
func (t TTL) Duration() time.Duration {
	return time.Duration(t.Days)*24*time.Hour +
		time.Duration(t.Hours)*time.Hour +
		time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second
}

// Claims is the decoded flat claim set of a verified token.
type Claims map[string]any

// Subject returns the sub claim as a string.
func (c Claims) Subject() string {
	s, _ := c["sub"].(string)
	return s
}

// TokenType returns the type claim.
func (c Claims) TokenType() Type {
	s, _ := c["type"].(string)
	return Type(s)
}

// Version returns the version claim, 0 when absent.
func (c Claims) Version() int64 {
	switch v := c["version"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// ID returns the jti claim.
func (c Claims) ID() string {
	s, _ := c["jti"].(string)
	return s
}
