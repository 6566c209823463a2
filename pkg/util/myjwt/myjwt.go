package myjwt

import (
	"errors"
	"time"

	"AssistHub/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	UserID           string   `json:"uid"`
	Roles            []string `json:"roles"`
	LongLivedTokenID string   `json:"lltid,omitempty"`
	jwt.RegisteredClaims
}

// IsLongLived reports whether the token was minted as a long-lived credential.
func (c *CustomClaims) IsLongLived() bool {
	return c.LongLivedTokenID != ""
}

// GenerateToken mints a short-lived session token for the user.
func GenerateToken(userID string, role string) (string, error) {
	conf := config.GetConfig()
	key := conf.JwtConfig.Key
	if key == "" {
		return "", errors.New("jwt key is empty")
	}

	expireHours := conf.JwtConfig.ExpireHours
	if expireHours <= 0 {
		expireHours = 3
	}

	claims := CustomClaims{
		UserID: userID,
		Roles:  []string{role},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

// GenerateLongLivedToken mints a token without expiry, bound to the user's
// current long-lived token id. Rotating that id on the user revokes the token.
func GenerateLongLivedToken(userID string, role string, longLivedTokenID string) (string, error) {
	conf := config.GetConfig()
	key := conf.JwtConfig.Key
	if key == "" {
		return "", errors.New("jwt key is empty")
	}

	claims := CustomClaims{
		UserID:           userID,
		Roles:            []string{role},
		LongLivedTokenID: longLivedTokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   issuer(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	conf := config.GetConfig()
	key := conf.JwtConfig.Key
	if key == "" {
		return nil, errors.New("jwt key is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func issuer() string {
	conf := config.GetConfig()
	if conf.JwtConfig.Issuer != "" {
		return conf.JwtConfig.Issuer
	}
	return conf.MainConfig.AppName
}
