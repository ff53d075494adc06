package model

import "errors"

var (
	// ErrTokenExpired marks a structurally valid token whose expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed marks a token failing signature or structure checks.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenMissingClaim marks a token without the required jti claim.
	ErrTokenMissingClaim = errors.New("token does not contain a jti claim")
	// ErrRefreshInvalid marks a refresh exchange whose refresh record is
	// missing, revoked or expired. Revocation wins over the token's own exp.
	ErrRefreshInvalid = errors.New("invalid or expired refresh token")
	// ErrAlreadyLoggedOut marks a second blacklist attempt for the same jti.
	ErrAlreadyLoggedOut = errors.New("user already logged out")
)
