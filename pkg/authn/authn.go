package authn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/permauth/permauth-in-go/pkg/identity"
)

const bearerScheme = "Bearer "

var (
	// ErrMissingToken indicates the Authorization header is absent or is
	// not a bearer credential.
	ErrMissingToken = errors.New("authorization token is required")

	// ErrInvalidToken indicates the credential could not be verified or
	// does not carry a parseable userId claim.
	ErrInvalidToken = errors.New("invalid token")
)

// ExtractBearer returns the raw token from an Authorization header value.
// The "Bearer " scheme match is case-insensitive, matching what HTTP
// clients actually send.
func ExtractBearer(header string) (string, error) {
	if len(header) < len(bearerScheme) {
		return "", ErrMissingToken
	}
	if !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(header[len(bearerScheme):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// Issuer signs and verifies tokens with a shared HMAC secret.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewIssuer creates an Issuer.
func NewIssuer(secret []byte, issuer, audience string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// IssueToken creates a signed token for a user. The userId claim is the
// stringified integer identifier the gate later reads back.
func (i *Issuer) IssueToken(userID int, email, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   strconv.Itoa(userID),
		"email":    email,
		"username": username,
		"iss":      i.issuer,
		"aud":      i.audience,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseIdentity verifies a token and reads the identity claims out of it.
// Any verification or claim failure collapses to ErrInvalidToken; callers
// never see parser internals.
func (i *Issuer) ParseIdentity(tokenString string) (*identity.Identity, error) {
	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	rawID, ok := claims["userId"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id := &identity.Identity{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if username, ok := claims["username"].(string); ok {
		id.Username = username
	}
	return id, nil
}
