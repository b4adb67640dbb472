package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMissingSubject   = errors.New("token missing subject")
	ErrUnsupportedAlgorithm  = errors.New("unsupported signing algorithm")
)

// SigningKey pairs a secret with the HMAC algorithm it signs with. Access and
// refresh tokens each get their own key so one kind can never pass as the other.
type SigningKey struct {
	secret []byte
	method jwt.SigningMethod
}

// NewSigningKey validates algorithm (HS256, HS384 or HS512) and secret.
func NewSigningKey(secret, algorithm string) (SigningKey, error) {
	if secret == "" {
		return SigningKey{}, errors.New("signing secret is empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return SigningKey{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return SigningKey{secret: []byte(secret), method: method}, nil
}

// Algorithm returns the JWS "alg" identifier.
func (k SigningKey) Algorithm() string {
	if k.method == nil {
		return ""
	}
	return k.method.Alg()
}

// Claims is the decoded claim set.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Validate checks the claims that Decode leaves to the caller: a subject must
// be present and exp must lie strictly after now.
func (c Claims) Validate(now time.Time) error {
	if c.Subject == "" {
		return ErrTokenMissingSubject
	}
	if !c.ExpiresAt.After(now) {
		return ErrTokenExpired
	}
	return nil
}

// Codec issues and decodes signed tokens carrying {sub, exp}.
type Codec struct {
	now func() time.Time
}

func NewCodec() *Codec {
	return &Codec{now: time.Now}
}

// NewCodecWithClock is used by tests to pin the wall clock.
func NewCodecWithClock(now func() time.Time) *Codec {
	return &Codec{now: now}
}

// Now returns the codec's wall-clock time.
func (c *Codec) Now() time.Time {
	return c.now()
}

// Issue signs {sub: subject, exp: now+ttl}. exp has second precision.
func (c *Codec) Issue(subject string, key SigningKey, ttl time.Duration) (string, error) {
	if key.method == nil {
		return "", ErrUnsupportedAlgorithm
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(c.now().Add(ttl)),
	}
	t := jwt.NewWithClaims(key.method, claims)
	return t.SignedString(key.secret)
}

// Decode verifies signature and structure only. Expiry is reported through
// Claims.Validate so that callers can tell an expired token from a forged one.
func (c *Codec) Decode(token string, key SigningKey) (*Claims, error) {
	if key.method == nil {
		return nil, ErrUnsupportedAlgorithm
	}

	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &rc, func(*jwt.Token) (interface{}, error) {
		return key.secret, nil
	},
		jwt.WithValidMethods([]string{key.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrTokenInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if rc.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrTokenMalformed)
	}

	return &Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}, nil
}

// FailureReason names a token error for logs and metric labels. It is never
// sent to clients.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrTokenMissingSubject):
		return "missing_subject"
	default:
		return "malformed"
	}
}
