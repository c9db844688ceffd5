package config

import (
	"os"
	"strings"
)

// GetSecretOrEnv reads sensitive values from a Docker secret file or an
// environment variable. Priority: the file named by {NAME}_FILE, then the
// {NAME} variable, then the default.
func GetSecretOrEnv(name, defaultValue string) string {
	if filePath := os.Getenv(name + "_FILE"); filePath != "" {
		if data, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}

// SecretDefinition binds one secret name to a config field.
type SecretDefinition struct {
	Name     string
	Target   *string
	Default  string
	Required bool
}

// SecretNotFoundError reports a missing required secret.
type SecretNotFoundError struct {
	Name string
}

func (e *SecretNotFoundError) Error() string {
	return "required secret not found: " + e.Name
}

// LoadWithSecrets loads the YAML/env configuration and then injects
// secrets into the named target fields.
//
//	cfg := &config.Config{}
//	err := config.LoadWithSecrets(cfg, []config.SecretDefinition{
//	    {Name: "JWT_SECRET", Target: &cfg.JWT.SecretKey, Required: true},
//	    {Name: "DB_PASSWORD", Target: &dbPassword},
//	})
func LoadWithSecrets(cfg any, secrets []SecretDefinition, opts ...LoadOptions) error {
	if err := Load(cfg, opts...); err != nil {
		return err
	}
	for _, s := range secrets {
		value := GetSecretOrEnv(s.Name, s.Default)
		if s.Required && value == "" {
			return &SecretNotFoundError{Name: s.Name}
		}
		if s.Target != nil {
			*s.Target = value
		}
	}
	return nil
}
