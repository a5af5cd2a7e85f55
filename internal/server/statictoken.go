package server

import (
	"context"
	"errors"
)

// StaticTokenAuthenticator resolves bearer tokens from a fixed table loaded at
// startup. It stands in until the hosted identity provider is integrated.
type StaticTokenAuthenticator struct {
	tokens map[string]string
}

// NewStaticTokenAuthenticator builds an authenticator over a token -> user id
// table. A nil or empty table rejects every token.
func NewStaticTokenAuthenticator(tokens map[string]string) *StaticTokenAuthenticator {
	return &StaticTokenAuthenticator{tokens: tokens}
}

func (a *StaticTokenAuthenticator) VerifyToken(_ context.Context, token string) (string, error) {
	if userID, ok := a.tokens[token]; ok {
		return userID, nil
	}
	return "", errors.New("unrecognized token")
}
