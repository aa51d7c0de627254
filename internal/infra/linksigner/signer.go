// internal/infra/linksigner/signer.go
package linksigner

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid public link token")

// Claims identifies the student a public progress link was issued for.
type Claims struct {
	StudentID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTSigner issues HS256-signed public progress links.
type JWTSigner struct {
	baseURL string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

func NewJWTSigner(baseURL, secret string, ttl time.Duration) *JWTSigner {
	return &JWTSigner{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SignPublicLink returns <base>/public/student/<id>?token=<jwt>.
func (s *JWTSigner) SignPublicLink(studentID string) (string, error) {
	if studentID == "" {
		return "", errors.New("student id is empty")
	}
	now := s.now()
	claims := Claims{
		StudentID: studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   studentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing public link token: %w", err)
	}
	return s.baseURL + "/public/student/" + url.PathEscape(studentID) + "?token=" + url.QueryEscape(token), nil
}

// Verify checks a token and returns the student id it was issued for.
func (s *JWTSigner) Verify(token string) (string, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.StudentID == "" {
		return "", ErrInvalidToken
	}
	return c.StudentID, nil
}
