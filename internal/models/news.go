package models

// NewsItem — новость из внешней RSS-ленты. Не сохраняется: собирается заново на каждый запрос.
type NewsItem struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
	Summary     string `json:"summary"`
}
