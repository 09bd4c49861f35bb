package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sanpii/sav/app/config"
	"golang.org/x/crypto/bcrypt"
)

// The login gate is active only when AUTH_PASSWORD_HASH is configured; a
// personal instance on a trusted network runs without it.

func Enabled() bool {
	return config.AppConfig.AuthPasswordHash != ""
}

func CheckPassword(password string) bool {
	hash := config.AppConfig.AuthPasswordHash
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func getJWTSecret() []byte {
	return []byte(config.AppConfig.SecretKey)
}

// GenerateSession returns a signed session token valid for 24 hours.
func GenerateSession() (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "sav",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "sav",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

func ValidateSession(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return getJWTSecret(), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrInvalidKey
	}
	return nil
}
