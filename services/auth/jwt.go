package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// VerificationStatus classifies the outcome of verifying a bearer token.
type VerificationStatus int

const (
	// StatusValid means the signature checks out and the token is inside
	// its validity window.
	StatusValid VerificationStatus = iota
	// StatusExpired means the signature checks out but the expiration
	// has passed.
	StatusExpired
	// StatusMalformed means the token could not be parsed or its
	// signature did not verify.
	StatusMalformed
	// StatusUnsupported means the token was signed with a method other
	// than HMAC.
	StatusUnsupported
)

// VerificationResult is the outcome of Codec.Verify. Subject is set for
// valid tokens, and for expired ones when the claims are still readable.
type VerificationResult struct {
	Status  VerificationStatus
	Subject string
}

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// Codec signs and verifies compact HS256 bearer tokens. Verification is
// a pure function over the token and the clock; it never touches the
// ledger. Recording an Expired outcome is the caller's explicit step.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec creates a codec with the process-wide symmetric key and the
// configured access/refresh lifetimes.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess creates a signed access token for the given subject.
func (c *Codec) IssueAccess(subject string) (string, error) {
	return c.issue(subject, c.accessTTL)
}

// IssueRefresh creates a signed refresh token for the given subject.
func (c *Codec) IssueRefresh(subject string) (string, error) {
	return c.issue(subject, c.refreshTTL)
}

func (c *Codec) issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	// The jti keeps two tokens for one subject distinct even when issued
	// within the same second; the ledger keys rows by token string.
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a token string. It classifies the outcome
// instead of returning an error so callers decide what, if anything, to
// record about it.
func (c *Codec) Verify(tokenString string) VerificationResult {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return c.secret, nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if errors.Is(ve.Inner, errUnexpectedSigningMethod) {
				return VerificationResult{Status: StatusUnsupported}
			}
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return VerificationResult{Status: StatusExpired, Subject: subjectOf(token)}
			}
		}
		return VerificationResult{Status: StatusMalformed}
	}

	sub := subjectOf(token)
	if sub == "" {
		return VerificationResult{Status: StatusMalformed}
	}
	return VerificationResult{Status: StatusValid, Subject: sub}
}

func subjectOf(token *jwt.Token) string {
	if token == nil {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
