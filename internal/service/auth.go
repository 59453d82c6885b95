package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
	"github.com/pribylovaa/go-lawfirm-cms/pkg/log"
	"github.com/pribylovaa/go-lawfirm-cms/pkg/redact"
	"golang.org/x/crypto/bcrypt"
)

// Сообщения для клиента. Фронтенд показывает их без изменений.
const (
	msgCredentialsRequired = "Usuário e senha são obrigatórios"
	msgPasswordTooShort    = "A senha deve ter no mínimo %d caracteres!"
)

// Login проверяет пару логин/пароль и выпускает токен сессии.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, error) {
	const op = "service/auth/Login"

	lg := log.From(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%s: %w", op, invalid("username", msgCredentialsRequired))
	}

	if password == "" {
		return nil, fmt.Errorf("%s: %w", op, invalid("password", msgCredentialsRequired))
	}

	if minLen := s.auth.MinPasswordLen; minLen > 0 && utf8.RuneCountInString(password) < minLen {
		return nil, fmt.Errorf("%s: %w", op, invalid("password", fmt.Sprintf(msgPasswordTooShort, minLen)))
	}

	admin, err := s.admins.AdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Info("login_unknown_user",
				slog.String("op", op),
				slog.String("username", redact.Username(username)),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		lg.Error("admin_lookup_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !admin.Active || !checkPassword(admin.PasswordHash, password) {
		lg.Info("login_rejected",
			slog.String("op", op),
			slog.String("admin_id", admin.ID),
			slog.Bool("active", admin.Active),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, exp, err := s.issueToken(ctx, admin.ID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("login_ok",
		slog.String("op", op),
		slog.String("admin_id", admin.ID),
	)

	return &models.Session{AdminID: admin.ID, Token: token, ExpiresAt: exp}, nil
}

// HashPassword возвращает bcrypt-хэш пароля. Используется утилитой seed-admin.
func HashPassword(password string) (string, error) {
	const op = "service/auth/HashPassword"

	if password == "" {
		return "", fmt.Errorf("%s: %w", op, invalid("password", msgCredentialsRequired))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
