package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mustKey(t *testing.T, secret, alg string) SigningKey {
	t.Helper()
	k, err := NewSigningKey(secret, alg)
	if err != nil {
		t.Fatalf("NewSigningKey(%q): %v", alg, err)
	}
	return k
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec()
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		key := mustKey(t, "access-secret", alg)
		for _, sub := range []string{"u1", "91dba2e3-d98d-4abe-ab66-162d2398e178", "ünïcödé id"} {
			token, err := codec.Issue(sub, key, 15*time.Minute)
			if err != nil {
				t.Fatalf("issue: %v", err)
			}
			claims, err := codec.Decode(token, key)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if claims.Subject != sub {
				t.Fatalf("expected sub %q, got %q", sub, claims.Subject)
			}
			if err := claims.Validate(time.Now()); err != nil {
				t.Fatalf("fresh token should validate: %v", err)
			}
		}
	}
}

func TestCodec_ExpiryIsSeparateFromSignature(t *testing.T) {
	codec := NewCodec()
	key := mustKey(t, "access-secret", "HS256")

	token, err := codec.Issue("u1", key, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Decode(token, key)
	if err != nil {
		t.Fatalf("expired token must still pass signature verification: %v", err)
	}
	if err := claims.Validate(time.Now()); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_ExpiryUsesSecondPrecision(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 900_000_000, time.UTC)
	codec := NewCodecWithClock(func() time.Time { return fixed })
	key := mustKey(t, "access-secret", "HS256")

	token, err := codec.Issue("u1", key, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := codec.Decode(token, key)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := fixed.Add(time.Minute).Truncate(time.Second)
	if !claims.ExpiresAt.Equal(want) {
		t.Fatalf("expected exp %v, got %v", want, claims.ExpiresAt)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	codec := NewCodec()
	access := mustKey(t, "access-secret", "HS256")
	refresh := mustKey(t, "refresh-secret", "HS256")

	token, err := codec.Issue("u1", access, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Decode(token, refresh); !errors.Is(err, ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestCodec_AlgorithmMismatch(t *testing.T) {
	codec := NewCodec()
	token, err := codec.Issue("u1", mustKey(t, "secret", "HS512"), time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Decode(token, mustKey(t, "secret", "HS256")); !errors.Is(err, ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestCodec_TamperedPayload(t *testing.T) {
	codec := NewCodec()
	key := mustKey(t, "secret", "HS256")
	token, err := codec.Issue("u1", key, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	forgedStr, err := forged.SignedString([]byte("other"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forgedStr, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	if _, err := codec.Decode(spliced, key); !errors.Is(err, ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec()
	key := mustKey(t, "secret", "HS256")
	for _, raw := range []string{"", "garbage", "a.b.c", "not.a.token.at.all"} {
		if _, err := codec.Decode(raw, key); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("%q: expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestCodec_MissingExpIsMalformed(t *testing.T) {
	codec := NewCodec()
	key := mustKey(t, "secret", "HS256")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Decode(signed, key); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestClaims_MissingSubject(t *testing.T) {
	c := Claims{ExpiresAt: time.Now().Add(time.Hour)}
	if err := c.Validate(time.Now()); !errors.Is(err, ErrTokenMissingSubject) {
		t.Fatalf("expected ErrTokenMissingSubject, got %v", err)
	}
}

func TestNewSigningKey_Rejects(t *testing.T) {
	if _, err := NewSigningKey("", "HS256"); err == nil {
		t.Fatalf("empty secret accepted")
	}
	for _, alg := range []string{"RS256", "none", "ES256", "bogus", ""} {
		if _, err := NewSigningKey("secret", alg); !errors.Is(err, ErrUnsupportedAlgorithm) {
			t.Fatalf("%q: expected ErrUnsupportedAlgorithm, got %v", alg, err)
		}
	}
}
