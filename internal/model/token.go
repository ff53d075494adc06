package model

import "time"

// TokenManager issues and verifies signed session tokens.
type TokenManager interface {
	Issue(subject Subject, params IssueParams) (string, error)
	Verify(token string) (TokenClaims, error)
}

// IssueParams controls a single token issuance. Empty SessionID or JTI
// means "generate a fresh one". An access/refresh pair issued for one
// login must share both values.
type IssueParams struct {
	SessionID string
	JTI       string
	TTL       time.Duration
	Refresh   bool
}

// TokenClaims is the decoded payload of a verified session token.
type TokenClaims struct {
	Subject   Subject
	JTI       string
	SessionID string
	Refresh   bool
	ExpiresAt time.Time
}
