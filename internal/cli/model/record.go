package model

import "time"

// Виды записей (совпадают с серверными).
const (
	KindText  = "text"
	KindImage = "image"
	KindFile  = "file"
)

// Record - запись на проводе: контентные поля — упакованные шифртексты.
type Record struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`       // шифртекст
	Category   string    `json:"category"`   // шифртекст
	Importance string    `json:"importance"` // шифртекст
	Content    string    `json:"content,omitempty"`  // шифртекст, только kind=text
	BlobRef    string    `json:"blob_ref,omitempty"` // шифртекст пути, kind=image|file
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
