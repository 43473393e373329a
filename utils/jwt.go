package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Overridden from JWT_SECRET in main.
var SecretKey = []byte("change-me-in-env")

func GenerateToken(accountID uint, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"email":      email,
		"exp":        time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(SecretKey)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return SecretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
