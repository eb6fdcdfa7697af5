package auth

import (
	"errors"
	"filevault-backend/config"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload carried by both access and refresh tokens. The two
// token kinds differ only in signing secret and lifetime.
type Claims struct {
	UserID   string `json:"userId"`
	DeviceID string `json:"deviceId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a short-lived token signed with the access secret.
func GenerateAccessToken(userID, deviceID, email string, cfg *config.Config) (string, error) {
	ttl := time.Duration(cfg.Auth.AccessTokenTTL) * time.Minute
	return generateToken(userID, deviceID, email, cfg.Auth.AccessSecret, ttl)
}

// GenerateRefreshToken issues a longer-lived token signed with the refresh secret.
func GenerateRefreshToken(userID, deviceID, email string, cfg *config.Config) (string, error) {
	ttl := time.Duration(cfg.Auth.RefreshTokenTTL) * time.Hour
	return generateToken(userID, deviceID, email, cfg.Auth.RefreshSecret, ttl)
}

func generateToken(userID, deviceID, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		DeviceID: deviceID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GenerateTokenPair issues an access and a refresh token carrying the same
// claim payload.
func GenerateTokenPair(userID, deviceID, email string, cfg *config.Config) (string, string, error) {
	accessToken, err := GenerateAccessToken(userID, deviceID, email, cfg)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := GenerateRefreshToken(userID, deviceID, email, cfg)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAccessToken verifies signature and expiry against the access secret.
func ValidateAccessToken(tokenString string, cfg *config.Config) (*Claims, error) {
	return validateToken(tokenString, cfg.Auth.AccessSecret)
}

// ValidateRefreshToken verifies signature and expiry against the refresh secret.
func ValidateRefreshToken(tokenString string, cfg *config.Config) (*Claims, error) {
	return validateToken(tokenString, cfg.Auth.RefreshSecret)
}

func validateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
