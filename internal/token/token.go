package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are distinct because the API maps each to a different
// status code and body: missing header (401), malformed/bad signature (422),
// expired (401), claim verification (422).
var (
	ErrMissing      = errors.New("token missing")
	ErrMalformed    = errors.New("token malformed")
	ErrExpired      = errors.New("token expired")
	ErrVerification = errors.New("token verification failed")
)

// Service issues and verifies HS256 access tokens. The subject claim is the
// user id encoded as a string: JSON layers coerce numeric claims
// unpredictably, so identity travels as a string and is parsed back on use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue creates a signed token for userID, expiring after the configured TTL.
func (s *Service) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(userID),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates tokenStr and returns the user id from the
// subject claim. Returns one of ErrMissing, ErrExpired, ErrMalformed,
// ErrVerification.
func (s *Service) Verify(tokenStr string) (int, error) {
	if tokenStr == "" {
		return 0, ErrMissing
	}

	t, err := jwt.Parse(tokenStr,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrMalformed
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrVerification
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrVerification
	}
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return 0, ErrVerification
	}

	return userID, nil
}
