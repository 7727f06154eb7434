package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims carries the caller identity and whether the token is an access or refresh token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type"`
}

// TokenPair is returned on login. Refresh is exchanged for a new Access token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	now func() time.Time
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{Secret: secret, AccessTTL: accessTTL, RefreshTTL: refreshTTL, now: time.Now}
}

func (i *Issuer) clock() time.Time {
	if i.now == nil {
		return time.Now()
	}
	return i.now()
}

// IssuePair returns a fresh access and refresh token for userID.
func (i *Issuer) IssuePair(userID int) (TokenPair, error) {
	access, err := i.Issue(userID, TokenTypeAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.Issue(userID, TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) Issue(userID int, tokenType string) (string, error) {
	ttl := i.AccessTTL
	if tokenType == TokenTypeRefresh {
		ttl = i.RefreshTTL
	}
	now := i.clock()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: tokenType,
	})

	return token.SignedString(i.Secret)
}

// Parse verifies tokenString and returns the user id it was issued for.
// wantType must match the token_type claim.
func (i *Issuer) Parse(tokenString, wantType string) (int, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.clock),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return 0, ErrWrongTokenType
	}

	return claims.UserID, nil
}
