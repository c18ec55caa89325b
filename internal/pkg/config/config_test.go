package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "https://rest.boxhero-app.com", cfg.BoxHero.BaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.BoxHero.PageDelay)
	assert.Equal(t, 100, cfg.BoxHero.PageLimit)
	assert.Equal(t, 50, cfg.BoxHero.MaxPages)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("BOXHERO_TOKEN", "  tok-123 ")
	t.Setenv("BOXHERO_TEAM_ID", "42")
	t.Setenv("BOXHERO_PAGE_DELAY", "500ms")
	t.Setenv("ASYNQ_QUEUES", "imports:5, low:1")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "tok-123", cfg.BoxHero.Token)
	assert.Equal(t, "42", cfg.BoxHero.TeamID)
	assert.Equal(t, 500*time.Millisecond, cfg.BoxHero.PageDelay)
	assert.Equal(t, map[string]int{"imports": 5, "low": 1}, cfg.Asynq.Queues)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Name: "picking-api", Environment: "test"},
			Database: DatabaseConfig{Host: "db", Name: "picking", MaxConnections: 4, MinConnections: 1},
			Redis:    RedisConfig{Host: "redis", PoolSize: 4},
			Storage:  StorageConfig{Driver: "local", LocalDir: "/tmp"},
			BoxHero: BoxHeroConfig{
				PageLimit:     100,
				MaxPages:      50,
				PageDelay:     300 * time.Millisecond,
				RatePerSecond: 3,
				RateBurst:     1,
			},
			Security: SecurityConfig{RateLimitRequests: 10},
			Server:   ServerConfig{Port: "8080"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing_database_host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "Database.Host",
		},
		{
			name:    "page_limit_above_upstream_max",
			mutate:  func(c *Config) { c.BoxHero.PageLimit = 250 },
			wantErr: "page_limit",
		},
		{
			name:    "zero_catalog_rate",
			mutate:  func(c *Config) { c.BoxHero.RatePerSecond = 0 },
			wantErr: "rate_per_second must be positive",
		},
		{
			name:    "negative_catalog_rate",
			mutate:  func(c *Config) { c.BoxHero.RatePerSecond = -2 },
			wantErr: "rate_per_second must be positive",
		},
		{
			name:    "zero_catalog_burst",
			mutate:  func(c *Config) { c.BoxHero.RateBurst = 0 },
			wantErr: "rate_burst must be at least 1",
		},
		{
			name:    "unknown_storage_driver",
			mutate:  func(c *Config) { c.Storage.Driver = "ftp" },
			wantErr: "unknown storage driver",
		},
		{
			name: "short_jwt_secret_with_auth",
			mutate: func(c *Config) {
				c.Security.AuthEnabled = true
				c.Security.JWTSecret = "short"
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "production_requires_auth",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
				c.Security.AllowedOrigins = []string{"https://picking.example.com"}
			},
			wantErr: "authentication must be enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_MissingRequiredIsSentinel(t *testing.T) {
	cfg := &Config{}
	err := (&BasicValidator{}).Validate(cfg)
	assert.ErrorIs(t, err, ErrMissingRequiredConfig)
}

func TestParseQueues_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, map[string]int{"default": 1}, parseQueues("garbage"))
}

type fakeSecrets struct {
	calls  int
	secret string
	err    error
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{Name: in.SecretId, SecretString: aws.String(f.secret)}, nil
}

func TestSecretCredentials(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		fetchErr   error
		fallback   StaticCredentials
		wantToken  string
		wantTeamID string
		wantErr    bool
	}{
		{
			name:       "secret_overrides_environment",
			secret:     `{"BOXHERO_TOKEN":"sm-token","BOXHERO_TEAM_ID":"sm-team"}`,
			fallback:   StaticCredentials{Token: "env-token", TeamID: "env-team"},
			wantToken:  "sm-token",
			wantTeamID: "sm-team",
		},
		{
			name:       "missing_key_uses_fallback",
			secret:     `{"BOXHERO_TOKEN":"sm-token"}`,
			fallback:   StaticCredentials{TeamID: "env-team"},
			wantToken:  "sm-token",
			wantTeamID: "env-team",
		},
		{
			name:     "fetch_error_propagates",
			fetchErr: errors.New("access denied"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeSecrets{secret: tt.secret, err: tt.fetchErr}
			creds := SecretCredentials{
				Secrets:  NewAWSSecretsManagerWithClient(client, "picking/boxhero", discardLogger()),
				Fallback: tt.fallback,
			}

			token, teamID, err := creds.BoxHeroCredentials(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantTeamID, teamID)
		})
	}
}

func TestAWSSecretsManager_CachesWithinTTL(t *testing.T) {
	client := &fakeSecrets{secret: `{"BOXHERO_TOKEN":"a"}`}
	sm := NewAWSSecretsManagerWithClient(client, "picking/boxhero", discardLogger())

	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	_, err := sm.GetSecrets(context.Background(), []string{SecretKeyBoxHeroToken})
	require.NoError(t, err)
	_, err = sm.GetSecrets(context.Background(), []string{SecretKeyBoxHeroToken})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	now = now.Add(6 * time.Minute)
	_, err = sm.GetSecrets(context.Background(), []string{SecretKeyBoxHeroToken})
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestConfig_BoxHeroCredentialsWithoutSecret(t *testing.T) {
	cfg := &Config{BoxHero: BoxHeroConfig{Token: " env-token ", TeamID: "env-team"}}

	src, err := cfg.BoxHeroCredentials(context.Background(), discardLogger())
	require.NoError(t, err)
	require.IsType(t, StaticCredentials{}, src)

	token, teamID, err := src.BoxHeroCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
	assert.Equal(t, "env-team", teamID)
}
