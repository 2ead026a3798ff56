package utils

import (
	"errors"
	"time"

	"ceylonescape/config"

	"github.com/golang-jwt/jwt"
)

// Token claims carried by the auth collaborator's tokens. The auth service
// issues them; this service only verifies and extracts id/role.

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// IssueToken creates a signed JWT with the given subject and role.
// Kept for tooling and tests; production tokens come from the auth service.
func IssueToken(subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// VerifyToken parses and validates a token string and returns the subject ID
// and role embedded in it.
func VerifyToken(tokenString string) (id string, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	r, _ := claims["role"].(string)
	if r == "" {
		r = "user"
	}
	return sub, r, nil
}
