// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	SecretKeyBoxHeroToken  = "BOXHERO_TOKEN"
	SecretKeyBoxHeroTeamID = "BOXHERO_TEAM_ID"
)

// SecretValueAPI is the slice of the Secrets Manager client we call
type SecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManager reads a JSON key/value secret and caches it for ttl
type AWSSecretsManager struct {
	client     SecretValueAPI
	secretName string
	cache      map[string]string
	cacheMu    sync.RWMutex
	lastFetch  time.Time
	ttl        time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewAWSSecretsManager creates a new AWS Secrets Manager client
func NewAWSSecretsManager(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewAWSSecretsManagerWithClient(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

// NewAWSSecretsManagerWithClient wires an existing client
func NewAWSSecretsManagerWithClient(client SecretValueAPI, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		cache:      make(map[string]string),
		ttl:        5 * time.Minute,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// GetSecrets retrieves the requested keys, missing keys are left out
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	sm.cacheMu.RLock()
	if sm.now().Sub(sm.lastFetch) < sm.ttl && len(sm.cache) > 0 {
		cached := pick(sm.cache, keys)
		sm.cacheMu.RUnlock()
		return cached, nil
	}
	sm.cacheMu.RUnlock()

	sm.logger.InfoContext(ctx, "fetching secrets from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	result, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	var secretData map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &secretData); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	sm.cacheMu.Lock()
	sm.cache = secretData
	sm.lastFetch = sm.now()
	sm.cacheMu.Unlock()

	return pick(secretData, keys), nil
}

func pick(src map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if val, ok := src[key]; ok {
			out[key] = val
		}
	}
	return out
}

// StaticCredentials serves the BoxHero credentials loaded from the environment
type StaticCredentials struct {
	Token  string
	TeamID string
}

// BoxHeroCredentials returns the trimmed token and team id; either may be empty
func (s StaticCredentials) BoxHeroCredentials(context.Context) (string, string, error) {
	return strings.TrimSpace(s.Token), strings.TrimSpace(s.TeamID), nil
}

// SecretCredentials resolves BoxHero credentials from Secrets Manager,
// falling back to the environment values for any key the secret lacks.
type SecretCredentials struct {
	Secrets  *AWSSecretsManager
	Fallback StaticCredentials
}

func (s SecretCredentials) BoxHeroCredentials(ctx context.Context) (string, string, error) {
	values, err := s.Secrets.GetSecrets(ctx, []string{SecretKeyBoxHeroToken, SecretKeyBoxHeroTeamID})
	if err != nil {
		return "", "", fmt.Errorf("fetch boxhero secret: %w", err)
	}

	token, teamID, _ := s.Fallback.BoxHeroCredentials(ctx)
	if v := strings.TrimSpace(values[SecretKeyBoxHeroToken]); v != "" {
		token = v
	}
	if v := strings.TrimSpace(values[SecretKeyBoxHeroTeamID]); v != "" {
		teamID = v
	}
	return token, teamID, nil
}

// CredentialSource yields the BoxHero token and team id
type CredentialSource interface {
	BoxHeroCredentials(ctx context.Context) (token, teamID string, err error)
}

// BoxHeroCredentials selects Secrets Manager when BOXHERO_SECRET_NAME is set,
// the environment values otherwise
func (c *Config) BoxHeroCredentials(ctx context.Context, logger *slog.Logger) (CredentialSource, error) {
	static := StaticCredentials{Token: c.BoxHero.Token, TeamID: c.BoxHero.TeamID}
	if c.BoxHero.SecretName == "" {
		return static, nil
	}

	sm, err := NewAWSSecretsManager(ctx, c.AWS.Region, c.BoxHero.SecretName, logger)
	if err != nil {
		return nil, err
	}
	return SecretCredentials{Secrets: sm, Fallback: static}, nil
}
