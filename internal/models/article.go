package models

import (
	"encoding/hex"
	"time"
)

// Article — опубликованная статья. Черновиков нет: любая сохранённая статья видна публично.
//
// ID — ObjectID MongoDB в hex-представлении (24 символа).
// PDFPath — публичный путь вложения (например, /uploads/pdf-<uuid>.pdf) или пустая строка.
// CreatedBy/UpdatedBy — ID администраторов; пустые для записей, импортированных из старой базы.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`
	PublishDate time.Time  `json:"date"`
	PDFPath     string     `json:"pdf,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ArticleUpdate — частичное обновление статьи: nil-поля не меняются.
type ArticleUpdate struct {
	Title       *string
	Body        *string
	Author      *string
	PublishDate *time.Time
	PDFPath     *string
	UpdatedBy   string
	UpdatedAt   time.Time
}

// Empty сообщает, что обновление не затрагивает ни одного поля статьи.
func (u ArticleUpdate) Empty() bool {
	return u.Title == nil && u.Body == nil && u.Author == nil && u.PublishDate == nil && u.PDFPath == nil
}

// ValidID проверяет структурный формат идентификатора статьи (ObjectID, 24 hex-символа).
func ValidID(id string) bool {
	if len(id) != 24 {
		return false
	}

	_, err := hex.DecodeString(id)
	return err == nil
}
