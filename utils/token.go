package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hintermeier-t/projet-11-amelioration/models"

	"github.com/golang-jwt/jwt/v5"
)

const activationAudience = "activation"

// ActivationTokenGenerator produces single-use account activation tokens.
// Nothing is stored: a token embeds a digest of the user's mutable state and
// stops validating as soon as that state changes (activation, login,
// password change) or the timeout elapses.
type ActivationTokenGenerator struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

type activationClaims struct {
	State string `json:"st"`
	jwt.RegisteredClaims
}

func NewActivationTokenGenerator(secret string, timeout time.Duration) *ActivationTokenGenerator {
	return &ActivationTokenGenerator{secret: []byte(secret), timeout: timeout, now: time.Now}
}

func (g *ActivationTokenGenerator) MakeToken(user *models.User) (string, error) {
	now := g.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, activationClaims{
		State: stateDigest(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Audience:  jwt.ClaimStrings{activationAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.timeout)),
		},
	})
	return token.SignedString(g.secret)
}

func (g *ActivationTokenGenerator) CheckToken(user *models.User, tokenString string) bool {
	if user == nil || tokenString == "" {
		return false
	}
	var claims activationClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(activationAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return false
	}
	return claims.Subject == strconv.FormatUint(uint64(user.ID), 10) &&
		claims.State == stateDigest(user)
}

func stateDigest(user *models.User) string {
	var lastLogin int64
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UTC().Unix()
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%t|%d|%s", user.ID, user.IsActive, lastLogin, user.Password)))
	return hex.EncodeToString(sum[:])[:20]
}

// EncodeUID encodes a user id the way activation links carry it.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID. Trailing padding is accepted.
func DecodeUID(uidb64 string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(uidb64, "="))
	if err != nil {
		return 0, fmt.Errorf("decoding uid: %w", err)
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid uid")
	}
	return uint(id), nil
}
