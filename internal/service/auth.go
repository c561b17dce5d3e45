package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/rocketscienceinc/gamerules-backend/internal/apperror"
)

var errMissingUsername = errors.New("token has no username claim")

const tokenTTL = 24 * time.Hour

// AuthService verifies bearer tokens issued by the user service. Both sides
// share the HS256 secret; this service never issues tokens to end users,
// GenerateToken exists for tooling and tests.
type AuthService interface {
	GenerateToken(username string) (string, error)
	VerifyToken(tokenString string) (string, error)
}

type authServiceImpl struct {
	secretKey string
}

func NewAuthService(secretKey string) AuthService {
	return &authServiceImpl{
		secretKey: secretKey,
	}
}

func (that *authServiceImpl) GenerateToken(username string) (string, error) {
	claims := jwt.MapClaims{}
	claims["username"] = username
	claims["exp"] = time.Now().Add(tokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(that.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken - validates the signature and expiry and extracts the caller's
// username.
func (that *authServiceImpl) VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", apperror.ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(that.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperror.ErrUnauthenticated, err)
	}

	if !token.Valid {
		return "", apperror.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperror.ErrUnauthenticated
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", fmt.Errorf("%w: %v", apperror.ErrUnauthenticated, errMissingUsername)
	}

	return username, nil
}
