// Package models содержит доменные сущности CMS.
package models

import "time"

// Admin — администратор сайта. Создаётся вне API (cmd/seed-admin),
// API только читает записи при логине.
type Admin struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Active       bool
}

// Session — результат успешного логина: подписанный токен и срок его жизни.
type Session struct {
	AdminID   string
	Token     string
	ExpiresAt time.Time
}
