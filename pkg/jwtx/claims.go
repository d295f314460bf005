package jwtx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("jwtx: malformed token")
	ErrNoExpiry  = errors.New("jwtx: token has no exp claim")
	ErrExpired   = errors.New("jwtx: token expired")
)

// segmentParser is only used for its base64url segment decoding. Tokens
// are never verified client side, the API is the only issuer.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Payload is the decoded (unverified) claim set of an access token.
type Payload jwt.MapClaims

// DecodePayload splits a compact JWT and decodes its middle segment as
// base64url JSON. The header and signature segments are not inspected.
func DecodePayload(token string) (Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(parts))
	}

	raw, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if claims == nil {
		// "null" decodes without error but carries no claims.
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}

	return Payload(claims), nil
}

// ExpiresAt returns the exp claim of the payload.
func (p Payload) ExpiresAt() (time.Time, error) {
	exp, err := jwt.MapClaims(p).GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoExpiry, err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// expSeconds returns the raw exp claim without rounding it to whole
// seconds.
func (p Payload) expSeconds() (float64, error) {
	switch v := p["exp"].(type) {
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNoExpiry, err)
		}
		return f, nil
	default:
		return 0, ErrNoExpiry
	}
}

// Subject returns the sub claim, or "" when absent.
func (p Payload) Subject() string {
	sub, _ := jwt.MapClaims(p).GetSubject()
	return sub
}

// ExpiresAt decodes token and returns its exp claim.
func ExpiresAt(token string) (time.Time, error) {
	p, err := DecodePayload(token)
	if err != nil {
		return time.Time{}, err
	}
	return p.ExpiresAt()
}

// CheckExpiry reports nil when token is well formed, carries an exp claim
// and now is strictly before it at millisecond resolution.
func CheckExpiry(token string, now time.Time) error {
	p, err := DecodePayload(token)
	if err != nil {
		return err
	}
	exp, err := p.expSeconds()
	if err != nil {
		return err
	}
	if float64(now.UnixMilli()) >= exp*1000 {
		return ErrExpired
	}
	return nil
}

// Expired is CheckExpiry reduced to a bool. Malformed tokens and tokens
// without exp count as expired.
func Expired(token string, now time.Time) bool {
	return CheckExpiry(token, now) != nil
}
