package model

// User represents a registered account in the credential store.
// Records are created once at registration and never updated or deleted.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Email        string `json:"email" gorm:"uniqueIndex;size:120;not null"`
}
