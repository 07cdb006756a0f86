package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const defaultSecret = "readshelf-secret-change-me"

// Claims is the JWT payload. The subject carries the numeric user id.
type Claims struct {
	UserID int `json:"uid"`
	jwtlib.RegisteredClaims
}

// Signer issues and verifies HS256 tokens.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner returns a Signer; an empty secret falls back to the built-in default.
func NewSigner(secret string) *Signer {
	if secret == "" {
		secret = defaultSecret
	}
	return &Signer{secret: []byte(secret), now: time.Now}
}

// Sign creates a signed token for the given user.
func (s *Signer) Sign(userID int, ttl time.Duration) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("invalid user id %d", userID)
	}
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token string and returns the claims.
func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwtlib.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, errors.New("token carries no user")
	}
	return claims, nil
}
