package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/parleychat/parley-server/internal/model"
)

// Claims is the signed credential payload:
// {user: {user_id, username, email}, exp, jti, refresh, session_id}.
type Claims struct {
	jwt.RegisteredClaims
	Subject   model.Subject `json:"user"`
	Refresh   bool          `json:"refresh"`
	SessionID string        `json:"session_id"`
}

// JWT implements model.TokenManager backed by a process-wide symmetric key.
type JWT struct {
	secretKey string
	method    jwt.SigningMethod
}

// NewJWT creates a token manager signing with the named HMAC algorithm
// (HS256, HS384 or HS512).
func NewJWT(secretKey, algorithm string) (*JWT, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &JWT{secretKey: secretKey, method: method}, nil
}

// Issue builds and signs a token expiring at now+TTL. Blank SessionID or
// JTI are replaced with fresh random identifiers.
func (j *JWT) Issue(subject model.Subject, params model.IssueParams) (string, error) {
	sessionID := params.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	jti := params.JTI
	if jti == "" {
		jti = uuid.NewString()
	}

	token := jwt.NewWithClaims(j.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(params.TTL)),
		},
		Subject:   subject,
		Refresh:   params.Refresh,
		SessionID: sessionID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates signature and expiry and decodes the claims.
// Failures are one of model.ErrTokenExpired, model.ErrTokenMalformed or
// model.ErrTokenMissingClaim.
func (j *JWT) Verify(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, model.ErrTokenExpired
		}
		return model.TokenClaims{}, model.ErrTokenMalformed
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrTokenMalformed
	}
	if claims.ID == "" {
		return model.TokenClaims{}, model.ErrTokenMissingClaim
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return model.TokenClaims{
		Subject:   claims.Subject,
		JTI:       claims.ID,
		SessionID: claims.SessionID,
		Refresh:   claims.Refresh,
		ExpiresAt: expiresAt,
	}, nil
}
