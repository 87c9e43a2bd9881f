package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateDeviceToken issues the long-lived bearer token handed to the
// device at onboarding. There are no accounts; the token just proves the
// caller is the device that onboarded.
func GenerateDeviceToken(secret []byte, deviceID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"device": deviceID,
		"exp":    time.Now().Add(365 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

// ParseDeviceToken validates the token and returns the device id claim.
func ParseDeviceToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	device, _ := claims["device"].(string)
	if device == "" {
		return "", errors.New("device claim missing")
	}
	return device, nil
}
