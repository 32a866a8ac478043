package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that failed signature, shape, or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the registered claims plus the account identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// Issuer signs and verifies bearer tokens with a server-held HMAC secret.
type Issuer struct {
	secret   []byte
	validity time.Duration
}

func NewIssuer(secret string, validity time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), validity: validity}
}

// Issue mints a fresh token embedding the user id, valid from now for the
// configured window.
func (i *Issuer) Issue(userID int64) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID: userID,
	})
	return t.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
func (i *Issuer) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
