package identity

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CallerHeader carries the caller address when header trust is enabled.
const CallerHeader = "X-Caller-Address"

var ErrInvalidToken = errors.New("invalid bearer token")

// Resolver extracts the caller address from a request. With a Secret the
// address is the `sub` claim of an HS256 bearer token. Without one, CallerHeader
// is read as-is only when TrustHeader is set. Anything else is anonymous and
// resolves to the empty string.
type Resolver struct {
	Secret      string
	TrustHeader bool
}

// HeaderMode reports whether callers are taken from CallerHeader unverified.
func (r Resolver) HeaderMode() bool {
	return r.Secret == "" && r.TrustHeader
}

func (r Resolver) Caller(req *http.Request) (string, error) {
	if r.Secret == "" {
		if !r.TrustHeader {
			return "", nil
		}
		return strings.TrimSpace(req.Header.Get(CallerHeader)), nil
	}

	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", nil
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	claims, err := ValidateToken(strings.TrimSpace(token), r.Secret)
	if err != nil {
		return "", ErrInvalidToken
	}
	subject, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// IssueToken signs a caller token for address valid for ttl.
func IssueToken(secret string, address string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": address,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates an HS256 token.
func ValidateToken(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
