package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Token scopes. A token minted for one scope is never accepted in
// place of another.
const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
	ScopeEmail   = "email"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrWrongScope   = errors.New("token has the wrong scope")
)

// Claims embeds the registered JWT claims and adds the token scope.
// The subject is always the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// TokenMaker mints and verifies the three JWT kinds used by the API:
// short-lived access tokens, longer-lived refresh tokens and one-shot
// email confirmation tokens. All are HS256 signed with the same secret.
type TokenMaker struct {
	secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	EmailTTL   time.Duration
}

func NewTokenMaker(secret string, accessTTL, refreshTTL, emailTTL time.Duration) *TokenMaker {
	return &TokenMaker{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		EmailTTL:   emailTTL,
	}
}

func (t *TokenMaker) CreateAccessToken(email string) (string, error) {
	return t.sign(email, ScopeAccess, t.AccessTTL)
}

func (t *TokenMaker) CreateRefreshToken(email string) (string, error) {
	return t.sign(email, ScopeRefresh, t.RefreshTTL)
}

func (t *TokenMaker) CreateEmailToken(email string) (string, error) {
	return t.sign(email, ScopeEmail, t.EmailTTL)
}

func (t *TokenMaker) sign(email, scope string, ttl time.Duration) (string, error) {
	now := time.Now()

	// The jti keeps tokens minted in the same second distinct, so
	// rotating a refresh token always invalidates the previous one
	jti, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: scope,
	})

	return token.SignedString(t.secret)
}

// EmailFromToken parses a token, checks the signature, expiry and
// scope, and returns the subject email
func (t *TokenMaker) EmailFromToken(tokenStr, scope string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tk *jwt.Token) (any, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tk.Method.Alg())
		}

		return t.secret, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", ErrTokenInvalid
	}

	if claims.Scope != scope {
		return "", ErrWrongScope
	}

	return claims.Subject, nil
}
