package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin sessions live for 24 hours; after that the bearer token is rejected
// and the operator has to log in again.
const TokenTTL = 24 * time.Hour

type SignedDetails struct {
	AdminID  int    `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SignedToken issues the opaque bearer credential returned by login.
func SignedToken(adminID int, username string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	claims := &SignedDetails{
		AdminID:  adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "harare-wheels",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.New("error signing token")
	}
	return signedToken, nil
}
