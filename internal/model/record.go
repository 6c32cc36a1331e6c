package model

import "time"

// Виды записей. Фиксируются при создании, меняются только полной заменой.
const (
	KindText  = "text"
	KindImage = "image"
	KindFile  = "file"
)

// Record — серверная модель записи пользователя.
// Name/Category/Importance/Content/BlobRef — упакованные шифртексты,
// сервер обращается с ними как с непрозрачными строками.
type Record struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Kind       string `gorm:"not null"`
	Name       string `gorm:"not null"`
	Category   string `gorm:"not null"`
	Importance string `gorm:"not null"`

	Content string // только для kind=text
	BlobRef string // только для kind=image|file: шифртекст пути в blob store

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
