package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tradedesk/tradedesk/models"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT bound to one session
// record.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user id the token is issued for
//   - SessionID (sid): the id of the session record backing the token
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
//
// Returns the compact serialized token string (header.payload.signature) and
// the claims it carries, so the caller can persist the expiry on the session
// record without re-parsing the token.
func GenerateSessionToken(issuer, userID, sessionID string, ttl time.Duration, signKey string) (string, *models.TokenClaims, error) {
	if issuer == "" || userID == "" || sessionID == "" || ttl == 0 || signKey == "" {
		return "", nil, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", nil, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return tokenString, claims, nil
}

// ValidateSessionToken validates the given token string and extracts its
// claims.
//
// Validation includes:
//   - Structural check: the compact form must have exactly 3 dot-separated
//     segments (enforced by the JWT parser)
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided issuer
//   - Expiration (exp) claim check
//   - Presence of the subject (sub) and session (sid) claims
//
// Any failure is reported through the returned error; the function never
// panics on malformed input, so decode failures are a normal control-flow
// outcome for callers.
func ValidateSessionToken(tokenString, signKey, issuer string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("empty subject claim")
	}
	if claims.SessionID == "" {
		return nil, errors.New("empty session claim")
	}

	return claims, nil
}
