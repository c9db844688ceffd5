package config

// ApplyDefaults fills zero values across all sections.
func (c *Config) ApplyDefaults() {
	c.App.ApplyDefaults()
	c.CORS.ApplyDefaults()
	c.Log.ApplyDefaults()
	c.JWT.Defaults()
	c.Postgres.ApplyDefaults()
	c.SMTP.ApplyDefaults()
	c.FileStore.ApplyDefaults()
	c.Tracing.ApplyDefaults(c.App.Name)
	c.Google.ApplyDefaults()
}

// Validate rejects unusable configurations. Only hard faults are errors;
// everything else has a default.
func (c *Config) Validate() error {
	return c.JWT.Validate()
}

func (a *AppConfig) ApplyDefaults() {
	if a.Name == "" {
		a.Name = "Elemental App"
	}
	if a.Env == "" {
		a.Env = "development"
	}
	if a.Host == "" {
		a.Host = "localhost"
	}
	if a.Port <= 0 {
		a.Port = 8000
	}
	if a.APIVersion == "" {
		a.APIVersion = "v1"
	}
	if a.APIPrefix == "" {
		a.APIPrefix = "/api"
	}
}

func (c *CORSConfig) ApplyDefaults() {
	if len(c.Origins) == 0 {
		c.Origins = []string{"*"}
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{"*"}
	}
	if len(c.AllowHeaders) == 0 {
		c.AllowHeaders = []string{"*"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
}

func (l *LogConfig) ApplyDefaults() {
	if l.Format == "" {
		l.Format = "json"
	}
	if l.Level == "" {
		l.Level = "info"
	}
}

func (p *PostgresConfig) ApplyDefaults() {
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = 10
	}
	if p.MaxIdleConns <= 0 {
		p.MaxIdleConns = 5
	}
	if p.ConnMaxLifetimeSeconds <= 0 {
		p.ConnMaxLifetimeSeconds = 3600
	}
}

func (s *SMTPConfig) ApplyDefaults() {
	if s.Port <= 0 {
		s.Port = 587
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = 30
	}
}

func (f *FileStoreConfig) ApplyDefaults() {
	if f.Path == "" {
		f.Path = "./uploads"
	}
	if f.MaxSizeBytes <= 0 {
		f.MaxSizeBytes = 10 << 20
	}
}

func (t *TracingConfig) ApplyDefaults(serviceName string) {
	if t.Exporter == "" {
		t.Exporter = "disabled"
	}
	if t.ServiceName == "" {
		t.ServiceName = serviceName
	}
	if t.SampleRatio <= 0 || t.SampleRatio > 1 {
		t.SampleRatio = 1
	}
}

func (g *GoogleOAuthConfig) ApplyDefaults() {
	if g.TimeoutSeconds <= 0 {
		g.TimeoutSeconds = 10
	}
}
