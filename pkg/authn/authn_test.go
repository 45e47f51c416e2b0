package authn

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func testIssuer() *Issuer {
	return NewIssuer([]byte("test-secret"), "permauth", "permauth", time.Hour)
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		err    error
	}{
		{"missing header", "", "", ErrMissingToken},
		{"wrong scheme", "Token abc", "", ErrMissingToken},
		{"scheme only", "Bearer ", "", ErrMissingToken},
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi", nil},
		{"mixed case scheme", "BeArEr abc.def.ghi", "abc.def.ghi", nil},
		{"padded token", "Bearer   abc.def.ghi  ", "abc.def.ghi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractBearer(tt.header)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestIssueAndParseRoundtrip(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.IssueToken(42, "pat@example.com", "pat")
	assert.NoError(t, err)

	id, err := issuer.ParseIdentity(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, id.UserID)
	assert.Equal(t, "pat@example.com", id.Email)
	assert.Equal(t, "pat", id.Username)
}

func TestParseIdentityFailures(t *testing.T) {
	issuer := testIssuer()

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.ParseIdentity("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewIssuer([]byte("other-secret"), "permauth", "permauth", time.Hour)
		token, _ := other.IssueToken(42, "", "")

		_, err := issuer.ParseIdentity(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer claim", func(t *testing.T) {
		other := NewIssuer([]byte("test-secret"), "somebody-else", "permauth", time.Hour)
		token, _ := other.IssueToken(42, "", "")

		_, err := issuer.ParseIdentity(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewIssuer([]byte("test-secret"), "permauth", "permauth", -time.Minute)
		token, _ := expired.IssueToken(42, "", "")

		_, err := issuer.ParseIdentity(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing userId claim", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"iss": "permauth",
			"aud": "permauth",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := issuer.ParseIdentity(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non-integer userId claim", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"userId": "forty-two",
			"iss":    "permauth",
			"aud":    "permauth",
			"exp":    time.Now().Add(time.Hour).Unix(),
		})

		_, err := issuer.ParseIdentity(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("numeric userId claim is rejected", func(t *testing.T) {
		// The claim contract is a stringified integer, not a JSON number.
		token := signedToken(t, jwt.MapClaims{
			"userId": 42,
			"iss":    "permauth",
			"aud":    "permauth",
			"exp":    time.Now().Add(time.Hour).Unix(),
		})

		_, err := issuer.ParseIdentity(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
