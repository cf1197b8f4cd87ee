package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Config struct {
	Secret        string
	RefreshSecret string
	Audience      string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type JWTAuthenticator struct {
	cfg Config
	now func() time.Time
}

func NewJWTAuthenticator(cfg Config) *JWTAuthenticator {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &JWTAuthenticator{cfg: cfg, now: time.Now}
}

// GenerateTokens generates both access and refresh tokens, each with its own jti.
func (a *JWTAuthenticator) GenerateTokens(userID int64, role string) (TokenPair, error) {
	now := a.now()
	accessExp := now.Add(a.cfg.AccessTTL)
	refreshExp := now.Add(a.cfg.RefreshTTL)

	access := Claims{
		Role:             role,
		RegisteredClaims: a.registered(userID, now, accessExp),
	}
	refresh := Claims{
		RegisteredClaims: a.registered(userID, now, refreshExp),
	}

	accessToken, err := sign(access, a.cfg.Secret)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := sign(refresh, a.cfg.RefreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (a *JWTAuthenticator) registered(userID int64, now, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    a.cfg.Issuer,
		Audience:  jwt.ClaimStrings{a.cfg.Audience},
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

func sign(claims Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateAccessToken validates the access token
func (a *JWTAuthenticator) ValidateAccessToken(token string) (*Claims, error) {
	return a.parse(token, a.cfg.Secret)
}

// ValidateRefreshToken validates the refresh token
func (a *JWTAuthenticator) ValidateRefreshToken(token string) (*Claims, error) {
	return a.parse(token, a.cfg.RefreshSecret)
}

func (a *JWTAuthenticator) parse(token, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(a.cfg.Issuer),
		jwt.WithAudience(a.cfg.Audience),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
