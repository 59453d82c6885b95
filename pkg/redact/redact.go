// redact маскирует чувствительные данные для логов: пароли в строках
// подключения и логины администраторов.
package redact

import (
	"net/url"
	"strings"
)

// URL скрывает пароль в строке подключения (mongodb://, redis://, https://).
// Пользователь, хост и путь сохраняются.
//
//	"mongodb://cms:secret@db:27017/cms" -> "mongodb://cms:***@db:27017/cms"
//	"redis://:secret@cache:6379/0"      -> "redis://:***@cache:6379/0"
//
// Строка без схемы или хоста целиком заменяется на "***".
func URL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***"
	}

	if u.User == nil {
		return u.String()
	}

	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}

	// url.String экранирует "*" в userinfo.
	return strings.Replace(u.String(), "%2A%2A%2A", "***", 1)
}

// Username оставляет первые два символа логина: "admin" -> "ad***".
// Логины короче трёх символов скрываются полностью.
func Username(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= 2 {
		return "***"
	}

	return string(r[:2]) + "***"
}
