package repo

import (
	"context"
	"errors"
)

var ErrUnknownUser = errors.New("unknown user")

type Credential struct {
	Username     string
	PasswordHash string
	Role         string
}

// CredentialRepo is injected into the auth service so the verifier has
// no hidden global state and tests can substitute their own records.
type CredentialRepo interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
}

type InMemoryCredentials struct {
	byUsername map[string]Credential
}

func NewInMemoryCredentials(records ...Credential) *InMemoryCredentials {
	m := make(map[string]Credential, len(records))
	for _, r := range records {
		m[r.Username] = r
	}
	return &InMemoryCredentials{byUsername: m}
}

func (r *InMemoryCredentials) FindByUsername(_ context.Context, username string) (*Credential, error) {
	cred, ok := r.byUsername[username]
	if !ok {
		return nil, ErrUnknownUser
	}
	return &cred, nil
}
