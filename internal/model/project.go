package model

import "time"

// Project pairs uploaded PDF metadata with its stored file. Records are
// append-only: created on upload, immutable thereafter, visible to every
// authenticated user.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	PDFPath     string    `json:"pdf_path" gorm:"size:255;not null"`
	DateCreated time.Time `json:"date_created" gorm:"autoCreateTime"`
	// Owner is the creator's username. Soft reference: no foreign key, the
	// credential store never deletes users.
	Owner string `json:"owner" gorm:"size:80;not null;index"`
}
