package view

import "time"

// DecryptedRecord — DTO для отображения записи с расшифрованными полями.
// Не персистится: пересобирается при каждом fetch.
type DecryptedRecord struct {
	ID        string
	Kind      string
	CreatedAt time.Time

	// Отображаемые поля
	Name       string
	Category   string
	Importance string
	Content    string // расшифрованный текст, только kind=text
	BlobPath   string // расшифрованный путь в blob store, kind=image|file
	BlobURL    string // временная подписанная ссылка; протухает, на запись не сохраняется
}
