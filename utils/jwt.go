package utils

import (
	"errors"
	"time"

	"radiant/config"

	"github.com/golang-jwt/jwt"
)

// GenerateAdminToken creates a signed JWT for the admin surface. The token
// expires after the specified duration.
func GenerateAdminToken(duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   "admin",
		"admin": true,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateAdminToken parses a token string and confirms it carries the
// admin claim.
func ValidateAdminToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid claims")
	}
	if isAdmin, ok := claims["admin"].(bool); !ok || !isAdmin {
		return errors.New("not an admin token")
	}
	return nil
}
