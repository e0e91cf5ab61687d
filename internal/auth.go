package internal

import (
	"context"
	"os"
)

// TokenProvider supplies bearer tokens from an external authentication
// source. Token acquisition itself (device code, broker, CLI) is out of
// scope; providers only surface what the external source already holds.
type TokenProvider interface {
	// AccessToken returns a valid bearer token, or an error when none is
	// available
	AccessToken(ctx context.Context) (string, error)

	// CurrentIdentity returns the signed-in identity when the provider
	// knows it, or nil
	CurrentIdentity(ctx context.Context) (*Identity, error)
}

// DefaultTokenEnvVar is where the env provider looks for a token
const DefaultTokenEnvVar = "GRAPH_ACCESS_TOKEN"

// EnvTokenProvider reads a pre-acquired token from an environment variable
type EnvTokenProvider struct {
	Var string
}

// NewEnvTokenProvider creates a provider reading DefaultTokenEnvVar
func NewEnvTokenProvider() *EnvTokenProvider {
	return &EnvTokenProvider{Var: DefaultTokenEnvVar}
}

func (p *EnvTokenProvider) AccessToken(ctx context.Context) (string, error) {
	name := p.Var
	if name == "" {
		name = DefaultTokenEnvVar
	}
	token := os.Getenv(name)
	if token == "" {
		return "", &AuthError{Reason: "no access token in $" + name}
	}
	return token, nil
}

func (p *EnvTokenProvider) CurrentIdentity(ctx context.Context) (*Identity, error) {
	// The environment carries only the raw token
	return nil, nil
}

// StaticTokenProvider holds a fixed token and identity, used by tests and by
// callers that already completed an auth flow elsewhere
type StaticTokenProvider struct {
	Token    string
	Identity *Identity
}

func (p *StaticTokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.Token == "" {
		return "", &AuthError{Reason: "no access token configured"}
	}
	return p.Token, nil
}

func (p *StaticTokenProvider) CurrentIdentity(ctx context.Context) (*Identity, error) {
	return p.Identity, nil
}
