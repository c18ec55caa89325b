// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrMissingRequiredConfig is returned when a required setting is empty
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Validator checks one aspect of a loaded Config
type Validator interface {
	Validate(cfg *Config) error
}

// rule fails when broken returns true
type rule struct {
	broken func(cfg *Config) bool
	msg    string
}

func checkRules(cfg *Config, rules []rule) error {
	for _, r := range rules {
		if r.broken(cfg) {
			return errors.New(r.msg)
		}
	}
	return nil
}

var basicRules = []rule{
	{func(c *Config) bool { return c.Database.MaxConnections < c.Database.MinConnections },
		"database max_connections must be >= min_connections"},
	{func(c *Config) bool { return c.Redis.PoolSize <= 0 }, "redis pool_size must be positive"},
	{func(c *Config) bool { return c.Security.RateLimitRequests <= 0 }, "rate_limit_requests must be positive"},
	{func(c *Config) bool { return c.BoxHero.PageLimit < 1 || c.BoxHero.PageLimit > 100 },
		"boxhero page_limit must be between 1 and 100"},
	{func(c *Config) bool { return c.BoxHero.MaxPages <= 0 }, "boxhero max_pages must be positive"},
	{func(c *Config) bool { return c.BoxHero.PageDelay < 0 }, "boxhero page_delay must not be negative"},
	{func(c *Config) bool { return !(c.BoxHero.RatePerSecond > 0) }, "boxhero rate_per_second must be positive"},
	{func(c *Config) bool { return c.BoxHero.RateBurst < 1 }, "boxhero rate_burst must be at least 1"},
}

// BasicValidator checks required fields, pool sizes, scan bounds and the storage driver
type BasicValidator struct{}

func (v *BasicValidator) Validate(cfg *Config) error {
	if missing := missingRequired(reflect.Indirect(reflect.ValueOf(cfg)), ""); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, strings.Join(missing, ", "))
	}
	if err := checkRules(cfg, basicRules); err != nil {
		return err
	}
	return validateStorage(cfg)
}

func validateStorage(cfg *Config) error {
	var field, value string
	switch cfg.Storage.Driver {
	case "s3":
		field, value = "AWS.S3Bucket", cfg.AWS.S3Bucket
	case "local":
		field, value = "Storage.LocalDir", cfg.Storage.LocalDir
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, field)
	}
	return nil
}

var productionRules = []rule{
	{func(c *Config) bool { return c.Database.SSLMode == "disable" }, "database SSL must be enabled in production"},
	{func(c *Config) bool { return !c.Security.SecureHeaders }, "secure headers must be enabled in production"},
	{func(c *Config) bool { return !c.Security.AuthEnabled }, "authentication must be enabled in production"},
	{func(c *Config) bool { return len(c.Security.AllowedOrigins) == 0 }, "allowed origins must be configured in production"},
}

// ProductionValidator applies when APP_ENV=production
type ProductionValidator struct{}

func (v *ProductionValidator) Validate(cfg *Config) error {
	if isPlaceholder(cfg.Database.Password) {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}
	return checkRules(cfg, productionRules)
}

// SecurityValidator applies once AUTH_ENABLED is on
type SecurityValidator struct{}

func (v *SecurityValidator) Validate(cfg *Config) error {
	secret := cfg.Security.JWTSecret
	if cfg.IsProduction() {
		if secret == "development-secret-change-in-production" {
			return errors.New("default JWT secret cannot be used in production")
		}
		for _, origin := range cfg.Security.AllowedOrigins {
			if origin == "*" {
				return errors.New("wildcard origin (*) not allowed in production")
			}
		}
	}
	if len(secret) < 32 {
		return errors.New("JWT secret must be at least 32 characters")
	}
	return nil
}

// missingRequired walks nested structs and returns dotted names of
// `required:"true"` fields that are empty or still hold a MISSING_ placeholder
func missingRequired(v reflect.Value, prefix string) []string {
	var out []string
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f, sf := v.Field(i), t.Field(i)
		name := sf.Name
		if prefix != "" {
			name = prefix + "." + name
		}
		switch {
		case f.Kind() == reflect.Struct:
			out = append(out, missingRequired(f, name)...)
		case sf.Tag.Get("required") != "true":
		case f.IsZero(), f.Kind() == reflect.String && isPlaceholder(f.String()):
			out = append(out, name)
		}
	}
	return out
}

func isPlaceholder(s string) bool {
	return strings.HasPrefix(s, "MISSING_")
}
