package jwt

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/internal/utils"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v4"
	"time"
)

const (
	tokenIssuer   = "RECIPE-MARKET"
	tokenLifetime = 120 * time.Minute
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string) (string, error)
		GetUserIDByToken(token string) (string, string, error)
		TokenLifetime() time.Duration
	}

	userClaims struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		issuer    string
		lifetime  time.Duration
		now       func() time.Time
	}
)

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(utils.GetConfig("JWT_SECRET"))
}

func NewJWTServiceWithSecret(secretKey string) JWTService {
	return &jwtService{
		secretKey: []byte(secretKey),
		issuer:    tokenIssuer,
		lifetime:  tokenLifetime,
		now:       time.Now,
	}
}

func (j *jwtService) TokenLifetime() time.Duration {
	return j.lifetime
}

func (j *jwtService) GenerateTokenUser(userID string, role string) (string, error) {
	now := j.now()
	claims := userClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *jwtService) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return j.secretKey, nil
}

// GetUserIDByToken returns the user id and role carried by a valid token.
func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	parsed, err := jwt.ParseWithClaims(token, &userClaims{}, j.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*userClaims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return "", "", domain.ErrTokenInvalid
	}
	if claims.Issuer != j.issuer {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.UserID, claims.Role, nil
}
