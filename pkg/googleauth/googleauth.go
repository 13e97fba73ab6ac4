package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/tasks/v1"
)

// Scopes needed by the assistant: calendar events and task lists.
var Scopes = []string{calendar.CalendarScope, tasks.TasksScope}

// Config locates the credential files.
type Config struct {
	// CredentialsPath is a Service Account key or an OAuth client (installed/web) JSON file.
	CredentialsPath string
	// TokenPath holds the user token for OAuth clients. Unused for Service Accounts.
	TokenPath string
	Scopes    []string
}

// TokenSourceFromFiles reads cfg.CredentialsPath and builds a token source.
func TokenSourceFromFiles(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return TokenSource(ctx, data, cfg.TokenPath, cfg.scopes()...)
}

// TokenSource tries a Service Account key first, then an OAuth client with a saved token.
func TokenSource(ctx context.Context, credentialsJSON []byte, tokenPath string, scopes ...string) (oauth2.TokenSource, error) {
	if len(scopes) == 0 {
		scopes = Scopes
	}

	jwtConfig, jwtErr := google.JWTConfigFromJSON(credentialsJSON, scopes...)
	if jwtErr == nil {
		return jwtConfig.TokenSource(ctx), nil
	}

	oauthConfig, err := google.ConfigFromJSON(credentialsJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", jwtErr)
	}

	if tokenPath == "" {
		tokenPath = "token.json"
	}
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("google credentials are an OAuth client but no usable token at %s (run assistantctl google-auth): %w", tokenPath, err)
	}
	return oauthConfig.TokenSource(ctx, tok), nil
}

// OAuthConfig parses an OAuth client file for the interactive consent flow.
func OAuthConfig(credentialsPath string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if len(scopes) == 0 {
		scopes = Scopes
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth client: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a token saved by SaveToken.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return &tok, nil
}

// SaveToken writes tok to path with owner-only permissions.
func SaveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

func (c Config) scopes() []string {
	if len(c.Scopes) == 0 {
		return Scopes
	}
	return c.Scopes
}
