package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pribylovaa/go-lawfirm-cms/pkg/log"
)

type sessionClaims struct {
	AdminID string `json:"aid"`
	jwt.RegisteredClaims
}

// issueToken подписывает токен сессии администратора (HS256).
func (s *Service) issueToken(ctx context.Context, adminID string, now time.Time) (string, time.Time, error) {
	const op = "service/token/issueToken"

	lg := log.From(ctx)
	exp := now.Add(s.auth.TokenTTL)

	claims := sessionClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.auth.Issuer,
			Subject:   adminID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.auth.JWTSecret))
	if err != nil {
		lg.Error("token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return signed, exp, nil
}

// ValidateToken проверяет токен сессии и возвращает ID администратора.
// Пустой токен — ErrUnauthenticated, истёкший — ErrTokenExpired, прочее — ErrInvalidToken.
// В БД не ходит.
func (s *Service) ValidateToken(_ context.Context, tokenStr string) (string, error) {
	const op = "service/token/ValidateToken"

	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return "", fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.auth.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.auth.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.AdminID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.AdminID, nil
}
