package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionAudience = "session"

// SessionManager signs and parses the session cookie value. The cookie holds
// an HS256 JWT whose subject is the user id.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Session is what a valid session token carries. Version must match the
// user's current session version for the session to be honored.
type Session struct {
	UserID  uint
	Version uint
}

type sessionClaims struct {
	Version uint `json:"sv"`
	jwt.RegisteredClaims
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Issue(s Session) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Version: s.Version,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(s.UserID), 10),
			Audience:  jwt.ClaimStrings{sessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

// Parse returns the session carried by a valid session token.
func (m *SessionManager) Parse(tokenString string) (Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(sessionAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Session{}, err
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return Session{}, errors.New("invalid session subject")
	}
	return Session{UserID: uint(id), Version: claims.Version}, nil
}

func (m *SessionManager) keyFunc(*jwt.Token) (interface{}, error) {
	return m.secret, nil
}
